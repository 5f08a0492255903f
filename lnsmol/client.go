/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package main

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/harrybrwn/geocore/linkstore"
)

// cliClient is the CLI's view of the link store: the same backend the
// HTTP server uses, so "lnsmol put" and a POST to the running service
// see identical state.
type cliClient struct {
	store *linkstore.Store
}

func newCLIClient(store *linkstore.Store) *cliClient {
	return &cliClient{store: store}
}

func (c *cliClient) Put(ctx context.Context, req linkstore.CreateRequest) (string, error) {
	return c.store.Create(ctx, req)
}

func (c *cliClient) Get(ctx context.Context, id string) (*linkstore.Link, error) {
	return c.store.Get(ctx, id)
}

func (c *cliClient) Del(ctx context.Context, id string) error {
	return c.store.Del(ctx, id)
}

func (c *cliClient) List(ctx context.Context) ([]linkstore.ListItem, error) {
	return c.store.List(ctx)
}

// openInBrowser resolves id's URL and shells out to the platform's
// "open this URL" command.
func (c *cliClient) openInBrowser(ctx context.Context, id string) error {
	link, err := c.store.Get(ctx, id)
	if err != nil {
		return err
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link.URL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link.URL)
	default:
		cmd = exec.Command("xdg-open", link.URL)
	}
	return cmd.Run()
}
