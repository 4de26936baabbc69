// Package console prints search outcomes to a terminal.
package console

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"io"
	"strings"
)

const (
	titleWidth       = 48
	descriptionWidth = 80
)

type Printer struct {
	out    io.Writer
	styles styles
	policy *bluemonday.Policy
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
		policy: bluemonday.StrictPolicy(),
	}
}

func (p *Printer) Notification(notification models.Notification) {
	style, ok := p.styles.notification[notification.Kind]
	if !ok {
		style = p.styles.dim
	}
	fmt.Fprintln(p.out, style.Render(notification.Message))
}

func (p *Printer) Opportunities(opportunities []models.Opportunity) {

	if len(opportunities) == 0 {
		fmt.Fprintln(p.out, p.styles.dim.Render("No opportunities returned"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Title", "Solicitation", "Type", "Posted", "Deadline", "Description"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: titleWidth, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Description", WidthMax: descriptionWidth, WidthMaxEnforcer: text.Trim},
	})

	for i, o := range opportunities {
		t.AppendRow(table.Row{
			i + 1,
			orDash(o.Title),
			orDash(o.SolicitationNumber),
			orDash(o.Type),
			orDash(o.PostedDate),
			orDash(o.ResponseDeadline),
			p.sanitize(o.Description),
		})
	}
	t.Render()
}

func (p *Printer) sanitize(description string) string {
	return strings.Join(strings.Fields(p.policy.Sanitize(description)), " ")
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
