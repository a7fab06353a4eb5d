package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/onobori/chintai"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	filter := c.filter()
	if err := filter.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
		return err
	}

	props, err := deps.Properties.FindProperties(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
		return err
	}
	matches := chintai.FilterProperties(props, filter)

	total := len(matches)
	if c.Limit > 0 && len(matches) > c.Limit {
		matches = matches[:c.Limit]
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if total == 0 {
		fmt.Fprintln(deps.Stdout, "No matching properties.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRENT\tFEE\tLAYOUT\tAREA\tAGE\tSTATION\tWALK")
	for _, p := range matches {
		a := p.Access[0]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, num(p.Rent), num(p.ManagementFee), p.Layout, num(p.Area), num(p.Age),
			str(a.Station), num(a.WalkMinutes))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%d of %d matching properties\n", len(matches), total)
	return nil
}

func (c *SearchCmd) filter() chintai.PropertyFilter {
	return chintai.PropertyFilter{
		Rent:          chintai.Range{Min: c.RentMin, Max: c.RentMax},
		ManagementFee: chintai.Range{Min: c.FeeMin, Max: c.FeeMax},
		Age:           chintai.Range{Min: c.AgeMin, Max: c.AgeMax},
		Area:          chintai.Range{Min: c.AreaMin, Max: c.AreaMax},
		Layout:        c.Layout,
		Stations:      c.Station,
	}
}

func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func str(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
