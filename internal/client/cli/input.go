package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
	"github.com/dmitrijs2005/clubhub/internal/client/validate"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password from the user's
// terminal without echo. A newline is printed after the read to keep the UI
// tidy.
func GetPassword(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
//
// This helper is used for post and event bodies.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetTags reads one line of tags separated by commas or spaces.
func GetTags(reader *bufio.Reader, w io.Writer) ([]string, error) {
	line, err := GetSimpleText(reader, "Tags (comma or space separated, empty for none)", w)
	if err != nil {
		return nil, err
	}
	return validate.ParseTags(line), nil
}

// GetFiles reads comma separated file paths and loads each one. An empty
// line means no files.
func GetFiles(reader *bufio.Reader, prompt string, w io.Writer) ([]formdata.File, error) {
	line, err := GetSimpleText(reader, prompt+" (comma separated paths, empty to skip)", w)
	if err != nil {
		return nil, err
	}
	var files []formdata.File
	for _, path := range strings.Split(line, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		f, err := formdata.LoadFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// GetFile reads an optional single file path.
func GetFile(reader *bufio.Reader, prompt string, w io.Writer) (*formdata.File, error) {
	files, err := GetFiles(reader, prompt, w)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return &files[0], nil
}

// GetInt reads a whole number; an empty line yields def.
func GetInt(reader *bufio.Reader, prompt string, def int, w io.Writer) (int, error) {
	line, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return 0, err
	}
	if line == "" {
		return def, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", line)
	}
	return n, nil
}

// GetDateTime reads a local date and time in api.DateTimeLayout.
func GetDateTime(reader *bufio.Reader, prompt string, w io.Writer) (time.Time, error) {
	line, err := GetSimpleText(reader, prompt+" (YYYY-MM-DDTHH:MM)", w)
	if err != nil {
		return time.Time{}, err
	}
	if line == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(api.DateTimeLayout, line, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a valid date and time", line)
	}
	return t, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
