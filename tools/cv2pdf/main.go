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

// Cv2pdf converts résumé text into a PDF file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/cvpdf"
	"seehuhn.de/go/cvpdf/font/loader"
	"seehuhn.de/go/cvpdf/layout"
	"seehuhn.de/go/cvpdf/pdf"
	"seehuhn.de/go/cvpdf/text"
	"seehuhn.de/go/cvpdf/tools/internal/buildinfo"
	"seehuhn.de/go/cvpdf/tools/internal/profile"
)

var (
	outArg      = flag.String("o", "", "output `file`, \"-\" for stdout")
	forceArg    = flag.Bool("f", false, "overwrite output file if it exists")
	fontsArg    = flag.String("fonts", "assets/fonts", "`directory` with NotoSans-Regular.ttf and NotoSans-Bold.ttf")
	goFontArg   = flag.Bool("gofont", false, "use the Go fonts instead of Noto Sans")
	paperArg    = flag.String("paper", "letter", "paper size: letter, a4 or a5")
	versionArg  = flag.String("pdf", "1.4", "PDF `version`")
	markdownArg = flag.Bool("markdown", false, "convert Markdown input to plain text first")
	rejectArg   = flag.Bool("reject-empty", false, "fail for input without visible text")
	checkArg    = flag.Bool("check", false, "verify the structure of the generated file")
	verboseArg  = flag.Bool("v", false, "show debug output")
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile  = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cv2pdf - convert résumé text into a PDF file\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("cv2pdf"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  cv2pdf [options] [input.txt]\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  input.txt  the résumé text; standard input is read if omitted\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s, %s\n", loader.EnvNames[loader.Regular], loader.EnvNames[loader.Bold])
		fmt.Fprintf(os.Stderr, "             base64 encoded font files, used instead of -fonts\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cv2pdf -o cv.pdf cv.txt\n")
		fmt.Fprintf(os.Stderr, "  cv2pdf -gofont -paper a4 -markdown cv.md\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cv2pdf:", err)
		os.Exit(1)
	}
}

func run() error {
	level := slog.LevelWarn
	if *verboseArg {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	stop, err := profile.Start(*cpuprofile, *memprofile, logger)
	if err != nil {
		return err
	}
	defer stop()

	inName := flag.Arg(0)
	outName := *outArg
	if outName == "" {
		outName = defaultOutput(inName)
	}
	if outName == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write PDF data to a terminal, use -o")
		}
	} else if !*forceArg {
		if _, err := os.Stat(outName); !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("output file %q already exists", outName)
		}
	}

	opt, err := options(logger)
	if err != nil {
		return err
	}
	enc, err := cvpdf.NewEncoder(fontProvider(), opt)
	if err != nil {
		return err
	}

	body, err := readInput(inName)
	if err != nil {
		return err
	}
	if *markdownArg {
		body = text.FromMarkdown([]byte(body))
	}

	data, err := enc.Encode(body)
	if err != nil {
		return err
	}

	if *checkArg {
		sum, err := pdf.Check(data)
		if err != nil {
			return fmt.Errorf("generated file is malformed: %w", err)
		}
		logger.Info("structure check passed",
			"version", sum.Version,
			"objects", sum.Size-1,
			"streams", sum.Streams,
			"startxref", sum.XRefPos)
	}

	if outName == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	err = os.WriteFile(outName, data, 0o644)
	if err != nil {
		return err
	}
	logger.Debug("output written", "file", outName, "bytes", len(data))
	return nil
}

func options(logger *slog.Logger) (*cvpdf.Options, error) {
	cfg := layout.DefaultConfig()
	paper, ok := layout.PaperSize(*paperArg)
	if !ok {
		return nil, fmt.Errorf("unknown paper size %q", *paperArg)
	}
	cfg.Paper = paper

	v, err := pdf.ParseVersion(*versionArg)
	if err != nil {
		return nil, err
	}

	opt := &cvpdf.Options{
		Layout:  cfg,
		Version: v,
		Logger:  logger,
	}
	if *rejectArg {
		opt.Empty = cvpdf.RejectEmpty
	}
	return opt, nil
}

func fontProvider() loader.Provider {
	if *goFontArg {
		return loader.GoFonts{}
	}
	return loader.Cached(&loader.Env{Fallback: loader.Dir(*fontsArg)})
}

// defaultOutput derives the output file name from the input file name.
func defaultOutput(inName string) string {
	if inName == "" || inName == "-" {
		return "-"
	}
	return strings.TrimSuffix(inName, filepath.Ext(inName)) + ".pdf"
}

func readInput(inName string) (string, error) {
	var r io.Reader = os.Stdin
	if inName != "" && inName != "-" {
		fd, err := os.Open(inName)
		if err != nil {
			return "", err
		}
		defer fd.Close()
		r = fd
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
