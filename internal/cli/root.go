/*
 * root.go, part of goeos.
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

// Package cli implements the goeos command.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/rmera/goeos/internal/config"
	"github.com/rmera/goeos/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the goeos version, set at build time.
var Version = "dev"

// app is the state shared by all the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     logr.Logger
	flush   func()
}

// NewRootCmd returns the goeos command with all its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logr.Discard(), flush: func() {}}
	root := &cobra.Command{
		Use:   "goeos",
		Short: "Equation of state fitting and regression checks",
		Long: `goeos samples the energy of a crystal at several volumes, fits
equations of state to the samples and checks the fitted equilibrium volumes
and bulk moduli against historical reference values.

The configuration is read from goeos.yaml (in the working directory or in
$HOME/.goeos), from GOEOS_* environment variables and from flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.flush()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "configuration file")
	root.PersistentFlags().CountP("verbose", "v", "more verbose logging, can be repeated")
	root.PersistentFlags().Bool("development", false, "human-friendly development logging")
	bind(root, "verbose", "verbose")
	bind(root, "development", "development")

	root.AddCommand(newRegressCmd(a))
	root.AddCommand(newFitCmd(a))
	root.AddCommand(newTrajCmd(a))
	root.AddCommand(newNomadCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

const bindPrefix = "viper-key:"

// bind marks the flag of cmd to be bound to the configuration key when cmd
// runs. Several commands can have flags for the same key.
func bind(cmd *cobra.Command, flag, key string) {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[bindPrefix+flag] = key
}

// bindFlags binds the marked flags of cmd and its parents to their configuration keys.
func (a *app) bindFlags(cmd *cobra.Command) error {
	for c := cmd; c != nil; c = c.Parent() {
		for k, key := range c.Annotations {
			flag, ok := strings.CutPrefix(k, bindPrefix)
			if !ok {
				continue
			}
			f := cmd.Flags().Lookup(flag)
			if f == nil {
				f = c.PersistentFlags().Lookup(flag)
			}
			if f == nil {
				return fmt.Errorf("no flag %q to bind to %q", flag, key)
			}
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := a.bindFlags(cmd); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	log, flush, err := logging.New(cfg.Verbose, cfg.Development)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	a.log, a.flush = log.WithName("goeos"), flush
	if f := a.v.ConfigFileUsed(); f != "" {
		a.log.V(logging.DEBUG).Info("configuration read", "file", f)
	}
	return nil
}

// Execute runs the goeos command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
