package cli

func (a *App) commands() []command {
	return []command{
		{name: "signup", help: "create an account", run: a.Signup},
		{name: "login", help: "log in", run: a.Login},
		{name: "logout", help: "log out", auth: true, run: a.Logout},
		{name: "whoami", help: "show the logged-in identity", auth: true, run: a.WhoAmI},
		{name: "me", help: "show your profile", auth: true, run: a.Me},
		{name: "nickname", args: "[name]", help: "change your nickname", auth: true, run: a.Nickname},
		{name: "avatar", args: "<path>", help: "upload a profile image", auth: true, nargs: 1, run: a.Avatar},
		{name: "noavatar", help: "remove the profile image", auth: true, run: a.RemoveAvatar},
		{name: "passwd", help: "change your password", auth: true, run: a.ChangePassword},
		{name: "deleteaccount", help: "delete your account", auth: true, run: a.DeleteAccount},

		{name: "clubs", help: "list clubs, yours first (*)", auth: true, run: a.Clubs},
		{name: "myclubs", help: "list your memberships", auth: true, run: a.MyClubs},
		{name: "club", args: "<id>", help: "show a club", auth: true, nargs: 1, run: a.Club},
		{name: "newclub", help: "create a club", auth: true, run: a.NewClub},
		{name: "apply", args: "<id>", help: "apply to join a club", auth: true, nargs: 1, run: a.Apply},
		{name: "cancel", args: "<id>", help: "cancel your application", auth: true, nargs: 1, run: a.CancelApplication},
		{name: "leave", args: "<id>", help: "leave a club", auth: true, nargs: 1, run: a.Leave},
		{name: "status", args: "<id>", help: "show your membership", auth: true, nargs: 1, run: a.Status},
		{name: "members", args: "<id>", help: "list club members", auth: true, nargs: 1, run: a.Members},
		{name: "applications", args: "<id>", help: "list pending applications", auth: true, nargs: 1, run: a.Applications},
		{name: "approve", args: "<id> <user>", help: "approve an application", auth: true, nargs: 2, run: a.Approve},
		{name: "reject", args: "<id> <user>", help: "reject an application", auth: true, nargs: 2, run: a.Reject},
		{name: "kick", args: "<id> <user>", help: "remove a member", auth: true, nargs: 2, run: a.Kick},

		{name: "posts", args: "[page]", help: "list posts", auth: true, run: a.Posts},
		{name: "post", args: "<id>", help: "show a post", auth: true, nargs: 1, run: a.Post},
		{name: "newpost", help: "publish a post", auth: true, run: a.NewPost},
		{name: "editpost", args: "<id>", help: "edit your post", auth: true, nargs: 1, run: a.EditPost},
		{name: "delpost", args: "<id>", help: "delete your post", auth: true, nargs: 1, run: a.DeletePost},
		{name: "like", args: "<id>", help: "like or unlike a post", auth: true, nargs: 1, run: a.Like},
		{name: "newevent", help: "create an event", auth: true, run: a.NewEvent},
	}
}

func (a *App) repl() repl {
	return repl{
		commands: a.commands(),
		reader:   a.reader,
		out:      a.out,
		loggedIn: a.isLoggedIn,
		status:   a.status,
		after:    a.afterCommand,
	}
}
