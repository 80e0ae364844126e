// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	jma "github.com/ianlewis/go-jma"
	"github.com/ianlewis/go-jma/ctype"
	"github.com/ianlewis/go-jma/pos"
	"github.com/ianlewis/go-jma/userdic"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "print the dictionary configuration",
		Action: func(c *cli.Context) error {
			d, err := openSysDict(c.String("dict-dir"))
			if err != nil {
				return err
			}
			defer d.Close()

			if _, err := d.conf.WriteTo(c.App.Writer); err != nil {
				return fmt.Errorf("%w: %w", ErrJmautil, err)
			}
			return nil
		},
	}
}

func resourcesCommand() *cli.Command {
	return &cli.Command{
		Name:  "resources",
		Usage: "list the resources of the system dictionary archive",
		Action: func(c *cli.Context) error {
			d, err := openSysDict(c.String("dict-dir"))
			if err != nil {
				return err
			}
			defer d.Close()

			tbl := table.New("Name", "Offset", "Size").WithWriter(c.App.Writer)
			for _, e := range d.a.Entries() {
				tbl.AddRow(e.Name, e.Offset, e.Size)
			}
			tbl.Print()
			return nil
		},
	}
}

func posCommand() *cli.Command {
	return &cli.Command{
		Name:  "pos",
		Usage: "list the POS tags and combination rules",
		Action: func(c *cli.Context) error {
			dir := c.String("dict-dir")
			d, err := openSysDict(dir)
			if err != nil {
				return err
			}
			defer d.Close()

			t, err := d.posTable(ctype.UTF8)
			if err != nil {
				return err
			}
			if err := loadCombineRules(t, dir); err != nil {
				return err
			}

			tbl := table.New("Index", "Alpha", "POS", "Category").WithWriter(c.App.Writer)
			for i := range t.Len() {
				alpha, _ := t.POS(i, pos.FormatAlpha)
				short, _ := t.POS(i, pos.FormatDefault)
				full, _ := t.POS(i, pos.FormatFullCategory)
				tbl.AddRow(i, alpha, short, full)
			}
			tbl.Print()

			if rules := t.Rules(); len(rules) > 0 {
				fmt.Fprintln(c.App.Writer)
				tbl := table.New("Target", "Sources").WithWriter(c.App.Writer)
				for _, r := range rules {
					target, _ := t.POS(r.Target, pos.FormatAlpha)
					var sources []string
					for _, s := range r.Sources {
						alpha, _ := t.POS(s, pos.FormatAlpha)
						sources = append(sources, alpha)
					}
					tbl.AddRow(target, strings.Join(sources, " "))
				}
				tbl.Print()
			}
			return nil
		},
	}
}

func userdicCommand() *cli.Command {
	return &cli.Command{
		Name:      "userdic",
		Usage:     "convert user dictionaries to the dictionary compiler format",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "decompositions",
				Usage:   "list the decompositions of the user nouns instead",
				Aliases: []string{"D"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("%w: no user dictionary", ErrFlagParse)
			}
			enc, err := ctype.ParseEncoding(c.String("encoding"))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFlagParse, err)
			}

			d, err := openSysDict(c.String("dict-dir"))
			if err != nil {
				return err
			}
			defer d.Close()

			t, err := d.posTable(enc)
			if err != nil {
				return err
			}
			s := d.settings
			index, ok := t.Index(s.UserNounPOS)
			if !ok {
				return fmt.Errorf("%w: %w: %q", ErrJmautil, jma.ErrNoUserNounPOS, s.UserNounPOS)
			}
			full, _ := t.POS(index, pos.FormatFullCategory)

			r, err := userdic.Compile(c.Args().Slice(), &userdic.Options{
				CType:          ctype.New(enc),
				POS:            full,
				ReadFormOffset: s.ReadFormOffset,
				Cost:           s.UserNounCost,
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJmautil, err)
			}

			if !c.Bool("decompositions") {
				if _, err := c.App.Writer.Write(r.CSV); err != nil {
					return fmt.Errorf("%w: %w", ErrJmautil, err)
				}
				return nil
			}

			tbl := table.New("Word", "Lexicon", "Reading").WithWriter(c.App.Writer)
			for _, word := range slices.Sorted(maps.Keys(r.DecompMap)) {
				for _, m := range r.DecompMap[word] {
					tbl.AddRow(word, m.Lexicon, m.ReadForm)
				}
			}
			tbl.Print()
			return nil
		},
	}
}
