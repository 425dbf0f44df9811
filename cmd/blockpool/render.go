package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/QuangTung97/blockpool"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const occupancyPreview = 64

type request struct {
	Op   string         `json:"op"`
	Size uint32         `json:"size"`
	Addr blockpool.Addr `json:"addr"`
	OK   bool           `json:"ok"`
}

type step struct {
	Title    string             `json:"title"`
	Requests []request          `json:"requests,omitempty"`
	Snapshot blockpool.Snapshot `json:"snapshot"`
}

func newStep(title string, p *blockpool.Pool, requests ...request) step {
	return step{
		Title:    title,
		Requests: requests,
		Snapshot: p.Snapshot(),
	}
}

func printJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

type renderer struct {
	out     io.Writer
	full    bool
	printer *message.Printer

	title lipgloss.Style
	class lipgloss.Style
	label lipgloss.Style
	fail  lipgloss.Style
}

func newRenderer(out io.Writer, full bool) *renderer {
	re := lipgloss.NewRenderer(out)
	return &renderer{
		out:     out,
		full:    full,
		printer: message.NewPrinter(language.English),

		title: re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		class: re.NewStyle().Bold(true),
		label: re.NewStyle().Faint(true),
		fail:  re.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (r *renderer) printf(format string, args ...interface{}) {
	fmt.Fprint(r.out, r.printer.Sprintf(format, args...))
}

func (r *renderer) steps(steps []step) {
	for _, s := range steps {
		r.step(s)
	}
}

func (r *renderer) step(s step) {
	r.printf("%s\n", r.title.Render("== "+s.Title+" =="))
	for _, req := range s.Requests {
		r.request(req)
	}
	r.snapshot(s.Snapshot)
	r.printf("\n")
}

func (r *renderer) request(req request) {
	if !req.OK {
		r.printf("%s %d B: %s\n", req.Op, req.Size, r.fail.Render("failed"))
		return
	}
	r.printf("%s %d B: addr %s\n", req.Op, req.Size, fmt.Sprint(req.Addr))
}

func (r *renderer) snapshot(s blockpool.Snapshot) {
	r.printf("%s %d bytes, allocation end %s\n", r.label.Render("Arena:"), s.Capacity, fmt.Sprint(s.AllocEnd))
	r.printf("%s sizes @%s, spans @%s, bases @%s\n", r.label.Render("Directory:"),
		fmt.Sprint(s.SizesOffset), fmt.Sprint(s.SpansOffset), fmt.Sprint(s.BasesOffset))

	for _, c := range s.Classes {
		r.printf("%s %d B x %d slots\n", r.class.Render(fmt.Sprintf("Class %d:", c.Index)), c.BlockSize, c.SlotCount)
		r.printf("  %s %s  %s %s..%s  %s %d/%d\n",
			r.label.Render("base"), fmt.Sprint(c.Base),
			r.label.Render("slots"), fmt.Sprint(c.SlotStart), fmt.Sprint(c.RegionEnd),
			r.label.Render("free"), c.Free, c.SlotCount,
		)
		r.printf("  %s %s\n", r.label.Render("occupancy"), r.occupancy(c.Occupancy))
	}
}

func (r *renderer) occupancy(bits string) string {
	if r.full || len(bits) <= occupancyPreview {
		return bits
	}
	return bits[:occupancyPreview] + "..."
}
