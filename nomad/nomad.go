/*
 * nomad.go, part of goeos.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package nomad uploads calculation folders to the NOMAD repository.
//
// The upload is a tar archive of the folders, streamed with curl to the repository,
// authenticated with a token. The token can be saved for later use in the file
// ~/.goeos/nomad-token.
package nomad

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

// DefaultURL is the address of the NOMAD upload service.
const DefaultURL = "http://nomad-repository.eu:8000"

// ErrNoToken means that no token was given and none was saved.
var ErrNoToken = errors.New("could not find token")

// Options for Upload.
type Options struct {
	Folders        []string
	Token          string //if empty, the saved token is used.
	DoNotSaveToken bool
	DryRun         bool   //only print the command.
	URL            string //DefaultURL if empty.
	TokenFile      string //DefaultTokenFile() if empty.
	In             io.Reader
	Out            io.Writer
	Log            logr.Logger
}

// DefaultTokenFile returns the file where the token is saved, ~/.goeos/nomad-token.
func DefaultTokenFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &Error{"Can't find the home directory", err, []string{"DefaultTokenFile"}}
	}
	return filepath.Join(home, ".goeos", "nomad-token"), nil
}

// ReadToken returns the first line of the token file.
func ReadToken(tokenfile string) (string, error) {
	f, err := os.Open(tokenfile)
	if errors.Is(err, os.ErrNotExist) {
		return "", &Error{tokenfile, ErrNoToken, []string{"ReadToken"}}
	}
	if err != nil {
		return "", &Error{"Can't read the token", err, []string{"ReadToken"}}
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", &Error{"Can't read the token", err, []string{"ReadToken"}}
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", &Error{tokenfile, ErrNoToken, []string{"ReadToken"}}
	}
	return token, nil
}

// SaveToken writes token to tokenfile, readable only by the user. The directory
// is created if needed.
func SaveToken(tokenfile, token string) error {
	if err := os.MkdirAll(filepath.Dir(tokenfile), 0o755); err != nil {
		return &Error{"Can't create the token directory", err, []string{"SaveToken"}}
	}
	if err := os.WriteFile(tokenfile, []byte(token+"\n"), 0o600); err != nil {
		return &Error{"Can't save the token", err, []string{"SaveToken"}}
	}
	//WriteFile doesn't change the permissions of an existing file.
	if err := os.Chmod(tokenfile, 0o600); err != nil {
		return &Error{"Can't save the token", err, []string{"SaveToken"}}
	}
	return nil
}

// Command returns the shell pipeline that uploads the folders.
func Command(folders []string, token, url string) string {
	if url == "" {
		url = DefaultURL
	}
	quoted := make([]string, len(folders))
	for i, f := range folders {
		quoted[i] = shellQuote(f)
	}
	return fmt.Sprintf("tar cf - %s | curl -XPUT -# -HX-Token:%s -N -F file=@- %s | xargs echo",
		strings.Join(quoted, " "), shellQuote(token), url)
}

// shellQuote returns s single-quoted, unless it only has characters that
// the shell doesn't interpret.
func shellQuote(s string) string {
	safe := s != ""
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./=:,+@%", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// Upload uploads the folders in opts to NOMAD, or only prints the command
// if opts.DryRun is set. If a token was given in opts, and saving is not disabled,
// it asks the user whether the token should be saved.
func Upload(ctx context.Context, opts Options) error {
	if len(opts.Folders) == 0 {
		return &Error{"No folders to upload", nil, []string{"Upload"}}
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	tokenfile := opts.TokenFile
	if tokenfile == "" {
		var err error
		if tokenfile, err = DefaultTokenFile(); err != nil {
			return errDecorate(err, "Upload")
		}
	}
	token := opts.Token
	if token == "" {
		var err error
		if token, err = ReadToken(tokenfile); err != nil {
			return errDecorate(err, "Upload")
		}
	}
	url := opts.URL
	if url == "" {
		url = DefaultURL
	}
	cmd := Command(opts.Folders, token, url)
	log.Info("uploading", "folders", opts.Folders, "url", url, "dryRun", opts.DryRun)
	if opts.DryRun {
		fmt.Fprintln(out, cmd)
	} else {
		c := exec.CommandContext(ctx, "sh", "-c", cmd)
		c.Stdout = out
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return &Error{"Upload failed", err, []string{"Upload"}}
		}
	}
	if opts.Token == "" || opts.DoNotSaveToken {
		return nil
	}
	fmt.Fprint(out, "Should I save your token for later use? (yes/No): ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return &Error{"Can't read the answer", err, []string{"Upload"}}
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		return nil
	}
	if err := SaveToken(tokenfile, opts.Token); err != nil {
		return errDecorate(err, "Upload")
	}
	fmt.Fprintln(out, "Wrote token to", tokenfile)
	return nil
}

// Error is the error type for the nomad package. It fulfills chem.Error.
type Error struct {
	message string
	err     error //the underlying error, or nil
	deco    []string
}

func (err *Error) Error() string {
	if err.err == nil {
		return "nomad: " + err.message
	}
	return fmt.Sprintf("nomad: %s: %s", err.message, err.err.Error())
}

// Unwrap returns the underlying error.
func (err *Error) Unwrap() error { return err.err }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func errDecorate(err error, caller string) error {
	if err2, ok := err.(*Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
