/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrybrwn/geocore/config"
	"github.com/harrybrwn/geocore/linkstore"
)

func newRootCmd() *cobra.Command {
	var confLoc string
	root := &cobra.Command{
		Use:           "lnsmol",
		Short:         "short-link service and command-line client",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&confLoc, "config-file", defaultConfigLoc, "location for configuration file")

	loadStore := func() (*linkstore.Store, *config.LinkConfig, error) {
		cfg, err := config.LoadLinkConfig(confLoc)
		if err != nil {
			return nil, nil, err
		}
		rdb := newRedisClient(cfg)
		return linkstore.NewRedisStore(rdb, cfg.Domain()), cfg, nil
	}

	root.AddCommand(newServerCmd(&confLoc))
	root.AddCommand(newPutCmd(loadStore))
	root.AddCommand(newGetCmd(loadStore))
	root.AddCommand(newDelCmd(loadStore))
	root.AddCommand(newListCmd(loadStore))
	root.AddCommand(newOpenCmd(loadStore))
	return root
}

type storeLoader func() (*linkstore.Store, *config.LinkConfig, error)

func newPutCmd(load storeLoader) *cobra.Command {
	var expires int64
	cmd := &cobra.Command{
		Use:   "put <url>",
		Short: "create a short link for a url",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := load()
			if err != nil {
				return err
			}
			req := linkstore.CreateRequest{URL: args[0]}
			if expires > 0 {
				req.Expires = &expires
			}
			id, err := newCLIClient(store).Put(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().Int64Var(&expires, "expires", 0, "TTL in seconds (0 = server default)")
	return cmd
}

func newGetCmd(load storeLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "print the url stored under a short id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := load()
			if err != nil {
				return err
			}
			link, err := newCLIClient(store).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link.URL)
			return nil
		},
	}
}

func newDelCmd(load storeLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "del <id>",
		Short: "delete a short link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := load()
			if err != nil {
				return err
			}
			return newCLIClient(store).Del(cmd.Context(), args[0])
		},
	}
}

func newListCmd(load storeLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list all stored links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := load()
			if err != nil {
				return err
			}
			items, err := newCLIClient(store).List(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		},
	}
}

func newOpenCmd(load storeLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "open a short link's target url in the default browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := load()
			if err != nil {
				return err
			}
			return newCLIClient(store).openInBrowser(cmd.Context(), args[0])
		},
	}
}

func newServerCmd(confLoc *string) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "run the lnsmol HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*confLoc)
		},
	}
}
