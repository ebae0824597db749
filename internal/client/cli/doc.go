// Package cli provides the interactive clubhub terminal client.
//
// It wires configuration, local token storage, the request gateway, the API
// services and a REPL. Typical flow: log in, browse clubs and posts, manage
// memberships and publish content.
//
// Key features:
//   - Signup / Login / Logout, with silent token refresh behind every call
//   - Clubs: browse, create, apply, leave and administer applications
//   - Posts and events: list, read, publish, like
//   - Profile: nickname, image, password and account removal
//
// When the session cannot be renewed the gateway notifies the App and sends
// it to the login entry point; the REPL then prompts for credentials before
// the next command. The REPL is started via App.Run(ctx), which blocks until
// the user exits.
package cli
