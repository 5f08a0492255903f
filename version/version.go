/*************************************************************************
 * Copyright 2018 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package version

import (
	"fmt"
	"io"
	"time"
)

const (
	MajorVersion int = 0
	MinorVersion int = 1
	PointVersion int = 0
)

var (
	BuildDate time.Time = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// Commit is set at build time via -ldflags, e.g.
	// -X github.com/harrybrwn/geocore/version.Commit=<sha>.
	Commit string
)

// PrintVersion writes the binary's version, build date and (if set at
// link time) source commit to wtr.
func PrintVersion(wtr io.Writer) {
	fmt.Fprintf(wtr, "Version:\t%d.%d.%d\n", MajorVersion, MinorVersion, PointVersion)
	fmt.Fprintf(wtr, "BuildDate:\t%s\n", BuildDate.Format(`2006-01-02 15:04:05`))
	if Commit != `` {
		fmt.Fprintf(wtr, "Commit:\t%s\n", Commit)
	}
}
