package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/imgdata/internal/codec"
	"github.com/ironsheep/imgdata/internal/console"
	"github.com/ironsheep/imgdata/internal/imaging"
	"github.com/ironsheep/imgdata/internal/server"
)

// emit prints v as indented JSON with --json, otherwise calls text.
func (a *app) emit(v interface{}, text func() error) error {
	if !a.jsonOut {
		return text()
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseCoords(args []string) (uint32, uint32, error) {
	x, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate %q: %w", args[0], err)
	}
	y, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate %q: %w", args[1], err)
	}
	return uint32(x), uint32(y), nil
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get X Y",
		Short: "Print the color and name of one pixel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parseCoords(args)
			if err != nil {
				return err
			}
			m, err := a.openManager()
			if err != nil {
				return err
			}
			p, err := m.Get(x, y)
			if err != nil {
				return err
			}
			return a.emit(p, func() error {
				_, err := fmt.Fprintf(a.stdout, "(%d, %d) %s 0x%s %s\n", p.X, p.Y, p.Color, p.Color.HexA(), p.ColorName)
				return err
			})
		},
	}
}

func (a *app) hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash X Y",
		Short: "Print the content hash of one pixel",
		Long: `Print the XXH64 digest of a pixel's coordinates and color. The value does
not depend on the color definitions in use.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parseCoords(args)
			if err != nil {
				return err
			}
			m, err := a.openManager()
			if err != nil {
				return err
			}
			h, err := m.Hash(x, y)
			if err != nil {
				return err
			}
			return a.emit(map[string]interface{}{"x": x, "y": y, "hash": strconv.FormatUint(h, 10)}, func() error {
				_, err := fmt.Fprintln(a.stdout, h)
				return err
			})
		},
	}
}

func (a *app) colorsCmd() *cobra.Command {
	var hex bool
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "List the colors defined in the color file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, err := a.openTable()
			if err != nil {
				return err
			}
			return a.printColors(t.SortedColors(), hex)
		},
	}
	cmd.Flags().BoolVar(&hex, "hex", false, "print 0xRRGGBB instead of r,g,b")
	return cmd
}

func (a *app) printColors(colors []codec.RGBA, hex bool) error {
	if hex {
		out := make([]string, len(colors))
		for i, c := range colors {
			out[i] = "0x" + c.Hex()
		}
		return a.emit(out, func() error {
			for _, s := range out {
				if _, err := fmt.Fprintln(a.stdout, s); err != nil {
					return err
				}
			}
			return nil
		})
	}

	out := make([][3]uint8, len(colors))
	for i, c := range colors {
		out[i] = c.RGB()
	}
	return a.emit(out, func() error {
		for _, c := range out {
			if _, err := fmt.Fprintf(a.stdout, "%d,%d,%d\n", c[0], c[1], c[2]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *app) namesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List the names defined in the color file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, err := a.openTable()
			if err != nil {
				return err
			}
			names := t.Names()
			sort.Strings(names)
			return a.emit(names, func() error {
				for _, n := range names {
					if _, err := fmt.Fprintln(a.stdout, n); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) uniqueCmd() *cobra.Command {
	var hex bool
	cmd := &cobra.Command{
		Use:   "unique",
		Short: "List the distinct RGB values present in the image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.openManager()
			if err != nil {
				return err
			}
			rgbs, err := m.UniqueColorsRGB()
			if err != nil {
				return err
			}
			colors := make([]codec.RGBA, len(rgbs))
			for i, c := range rgbs {
				colors[i] = codec.Opaque(c[0], c[1], c[2])
			}
			return a.printColors(colors, hex)
		},
	}
	cmd.Flags().BoolVar(&hex, "hex", false, "print 0xRRGGBB instead of r,g,b")
	return cmd
}

func (a *app) coverageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coverage",
		Short: "Count the pixels resolved to each name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.openManager()
			if err != nil {
				return err
			}
			cov := m.Coverage()
			return a.emit(cov, func() error {
				for _, nc := range cov {
					if _, err := fmt.Fprintf(a.stdout, "%-24s %8d %6.2f%%\n", nc.Name, nc.Count, nc.Percentage); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every pixel as a colored block and its name",
		Long: `Print the image row by row. Each pixel is a two-cell block painted in its
color followed by its name; pixels are separated by " :: ". Partially
transparent pixels are blended over black and fully transparent ones print a
"░░" marker. Unnamed pixels also show their 0xRRGGBBAA value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.openManager()
			if err != nil {
				return err
			}
			unknown, err := console.NewPainter(a.stdout).ShowNames(m.Pixels())
			if err != nil {
				return err
			}
			a.logger.Info("pixels shown", "total", m.Width()*m.Height(), "unknown", unknown)
			return nil
		},
	}
}

func (a *app) swatchCmd() *cobra.Command {
	var out string
	var cell int
	cmd := &cobra.Command{
		Use:   "swatch",
		Short: "Render the defined colors as a PNG strip",
		Long: `Render one square per color definition, left to right in file order.
Definitions that fail to decode are skipped with --lenient.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			reg, _, err := a.openTable()
			if err != nil {
				return err
			}
			colors := make([]codec.RGBA, 0, reg.Len())
			for _, e := range reg.Entries {
				c, err := e.Decode()
				if err != nil {
					// only reachable in lenient mode; the table build already warned
					continue
				}
				colors = append(colors, c)
			}
			if err := imaging.SaveSwatch(out, colors, cell); err != nil {
				return err
			}
			a.logger.Info("swatch written", "path", out, "colors", len(colors))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG file")
	cmd.Flags().IntVar(&cell, "cell", imaging.DefaultSwatchCell, "square size in pixels")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Serve pixel queries over the Model Context Protocol (JSON-RPC 2.0, one
request per line on stdin, responses on stdout). Configure it in an MCP client.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server.Version = Version
			a.logger.Debug("starting MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)
			return server.New(a.logger).Serve(cmd.InOrStdin(), a.stdout)
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.stdout, versionText())
			return err
		},
	}
}
