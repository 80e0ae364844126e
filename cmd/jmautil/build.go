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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-jma/ctype"
)

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "compile a text dictionary into a system dictionary",
		ArgsUsage: "TXT_DIR BIN_DIR",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "binary-charset",
				Usage:   "compile the binaries in `ENCODING` (default: the text encoding)",
				Aliases: []string{"b"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
			}

			k, err := newKnowledge(c)
			if err != nil {
				return err
			}
			binEnc := k.Encoding()
			if v := c.String("binary-charset"); v != "" {
				if binEnc, err = ctype.ParseEncoding(v); err != nil {
					return fmt.Errorf("%w: %w", ErrFlagParse, err)
				}
			}
			return k.EncodeSystemDict(c.Args().Get(0), c.Args().Get(1), binEnc)
		},
	}
}

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "load the dictionaries and print a summary",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "user-dict",
				Usage:   "add the user dictionary `FILE`",
				Aliases: []string{"u"},
			},
		},
		Action: func(c *cli.Context) error {
			k, err := newKnowledge(c)
			if err != nil {
				return err
			}
			for _, path := range c.StringSlice("user-dict") {
				k.AddUserDict(path)
			}

			if err := k.LoadDict(); err != nil {
				return err
			}
			defer k.Close()

			s := k.Settings()
			tbl := table.New("Setting", "Value").WithWriter(c.App.Writer)
			tbl.AddRow("State", k.State())
			tbl.AddRow("System dictionary", k.SystemDict())
			tbl.AddRow("Encoding", k.Encoding())
			tbl.AddRow("Config charset", s.ConfigCharset)
			tbl.AddRow("Binary charset", s.BinaryCharset)
			tbl.AddRow("POS tags", k.POSTable().Len())
			tbl.AddRow("POS combination rules", len(k.POSTable().Rules()))
			tbl.AddRow("Kana mappings", k.KanaTable().Len())
			tbl.AddRow("Width mappings", k.WidthTable().Len())
			tbl.AddRow("Case mappings", k.CaseTable().Len())
			tbl.AddRow("Base form offset", s.BaseFormOffset)
			tbl.AddRow("Read form offset", s.ReadFormOffset)
			tbl.AddRow("Norm form offset", s.NormFormOffset)
			if index, ok := k.UserNounPOSIndex(); ok {
				tbl.AddRow("User noun POS", fmt.Sprintf("%s (%d)", s.UserNounPOS, index))
			} else {
				tbl.AddRow("User noun POS", s.UserNounPOS+" (undefined)")
			}
			tbl.AddRow("User dictionaries", len(k.UserDicts()))
			tbl.AddRow("Decomposed user nouns", len(k.DecompMap()))
			tbl.Print()
			return nil
		},
	}
}
