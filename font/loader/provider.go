// seehuhn.de/go/cvpdf - a hand-built PDF encoder for résumé text
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package loader

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Static serves fixed font data.
// This is mostly useful for tests.
type Static map[Role][]byte

// Load implements the [Provider] interface.
func (s Static) Load(role Role) (*Program, error) {
	return NewProgram(role, s[role])
}

// FileNames gives the names of the font files used by [Dir].
var FileNames = map[Role]string{
	Regular: "NotoSans-Regular.ttf",
	Bold:    "NotoSans-Bold.ttf",
}

// Dir returns a provider which reads the files listed in [FileNames] from
// the given directory.
func Dir(dir string) Provider {
	return FS(os.DirFS(dir))
}

// FS returns a provider which reads the files listed in [FileNames] from
// fsys.
func FS(fsys fs.FS) Provider {
	return &fsProvider{fsys: fsys}
}

type fsProvider struct {
	fsys fs.FS
}

func (p *fsProvider) Load(role Role) (*Program, error) {
	fname, ok := FileNames[role]
	if !ok {
		return nil, &FontError{Role: role, Err: ErrMissingFont}
	}
	data, err := fs.ReadFile(p.fsys, fname)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &FontError{Role: role, Err: fmt.Errorf("%w: %s", ErrMissingFont, fname)}
	} else if err != nil {
		return nil, &FontError{Role: role, Err: err}
	}
	return NewProgram(role, data)
}

// EnvNames gives the environment variables used by [Env].
var EnvNames = map[Role]string{
	Regular: "NOTO_SANS_REGULAR_BASE64",
	Bold:    "NOTO_SANS_BOLD_BASE64",
}

// Env reads base64 encoded font files from the environment variables
// listed in [EnvNames].  For unset or empty variables, the font is
// loaded from fallback instead.  If fallback is nil, unset variables are
// an error.
type Env struct {
	Fallback Provider

	// LookupEnv is used to read the environment.
	// If this is nil, [os.LookupEnv] is used.
	LookupEnv func(string) (string, bool)
}

// Load implements the [Provider] interface.
func (e *Env) Load(role Role) (*Program, error) {
	lookup := e.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	name := EnvNames[role]
	val, ok := lookup(name)
	val = strings.TrimSpace(val)
	if !ok || val == "" {
		if e.Fallback == nil {
			return nil, &FontError{Role: role, Err: fmt.Errorf("%w: $%s not set", ErrMissingFont, name)}
		}
		return e.Fallback.Load(role)
	}

	data, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		return nil, &FontError{Role: role, Err: fmt.Errorf("$%s: %w", name, err)}
	}
	return NewProgram(role, data)
}

// GoFonts serves the Go Regular and Go Bold fonts.
type GoFonts struct{}

// Load implements the [Provider] interface.
func (GoFonts) Load(role Role) (*Program, error) {
	switch role {
	case Regular:
		return NewProgram(role, goregular.TTF)
	case Bold:
		return NewProgram(role, gobold.TTF)
	default:
		return nil, &FontError{Role: role, Err: ErrMissingFont}
	}
}

// Cached returns a provider which loads every font at most once.
// Errors are cached as well.
func Cached(p Provider) Provider {
	return &cache{p: p}
}

type cache struct {
	p Provider

	mu      sync.Mutex
	entries map[Role]*cacheEntry
}

type cacheEntry struct {
	once sync.Once
	prog *Program
	err  error
}

func (c *cache) Load(role Role) (*Program, error) {
	c.mu.Lock()
	if c.entries == nil {
		c.entries = make(map[Role]*cacheEntry)
	}
	e, ok := c.entries[role]
	if !ok {
		e = &cacheEntry{}
		c.entries[role] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.prog, e.err = c.p.Load(role)
	})
	return e.prog, e.err
}
