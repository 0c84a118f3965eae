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

package cli

import (
	"github.com/rmera/goeos/nomad"
	"github.com/spf13/cobra"
)

func newNomadCmd(a *app) *cobra.Command {
	opts := nomad.Options{}
	cmd := &cobra.Command{
		Use:   "nomad <folders...>",
		Short: "Upload files to NOMAD",
		Long: `Upload the given folders to the NOMAD repository, as a tar archive
streamed with curl. The token is taken from --token, or from
$HOME/.goeos/nomad-token.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Folders = args
			opts.URL = a.cfg.NomadURL
			opts.In = cmd.InOrStdin()
			opts.Out = cmd.OutOrStdout()
			opts.Log = a.log.WithName("nomad")
			return nomad.Upload(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Token, "token", "t", "", "NOMAD token")
	cmd.Flags().BoolVarP(&opts.DoNotSaveToken, "do-not-save-token", "n", false, "don't offer to save the token")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "0", false, "only print the upload command")
	cmd.Flags().StringVar(&opts.TokenFile, "token-file", "", "file with the saved token (default $HOME/.goeos/nomad-token)")
	return cmd
}
