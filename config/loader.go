/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/gcfg.v1"
)

const (
	maxConfigSize int64 = 4 * mb // This is a MASSIVE config file
)

var (
	ErrConfigFileTooLarge = errors.New("config file is too large")
	ErrFailedFileRead     = errors.New("failed to read entire config file")
)

// LoadFile opens the gcfg-format file at p and decodes it into v. A
// missing file is not an error: callers fall back to environment
// variables in that case.
func LoadFile(v interface{}, p string) error {
	fin, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer fin.Close()

	fi, err := fin.Stat()
	if err != nil {
		return err
	} else if fi.Size() > maxConfigSize {
		return ErrConfigFileTooLarge
	}

	bb := bytes.NewBuffer(nil)
	n, err := io.Copy(bb, fin)
	if err != nil {
		return err
	} else if n != fi.Size() {
		return ErrFailedFileRead
	}
	return LoadBytes(v, bb.Bytes())
}

// LoadBytes parses the gcfg-format contents of b into v.
func LoadBytes(v interface{}, b []byte) error {
	if int64(len(b)) > maxConfigSize {
		return ErrConfigFileTooLarge
	}
	return gcfg.ReadStringInto(v, string(b))
}
