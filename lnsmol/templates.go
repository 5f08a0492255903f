/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package main

import "html/template"

type createPage struct {
	Prefix string
}

var createPageTmpl = template.Must(template.New("create").Parse(`<!DOCTYPE html>
<html><head><title>new link</title></head>
<body>
<form method="post" action="{{.Prefix}}/new">
<input type="text" name="url" placeholder="https://example.com/long/path" required>
<input type="number" name="expires" placeholder="expires (seconds)">
<button type="submit">shorten</button>
</form>
</body></html>
`))

type newLinkPage struct {
	Prefix string
	ID     string
	URL    string
}

var newLinkTmpl = template.Must(template.New("new-link").Parse(`<!DOCTYPE html>
<html><head><title>link created</title></head>
<body>
<p>Short link for <code>{{.URL}}</code>:</p>
<p><a href="{{.Prefix}}/{{.ID}}">{{.Prefix}}/{{.ID}}</a></p>
<p><a href="{{.Prefix}}/info/{{.ID}}">details</a></p>
</body></html>
`))

type infoPage struct {
	Prefix string
	ID     string
	URL    string
}

var infoTmpl = template.Must(template.New("info").Parse(`<!DOCTYPE html>
<html><head><title>{{.ID}}</title></head>
<body>
<p>id: <code>{{.ID}}</code></p>
<p>url: <a href="{{.URL}}">{{.URL}}</a></p>
</body></html>
`))
