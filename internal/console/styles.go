package console

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/maxaizer/sam-finder/internal/domain/models"
)

var (
	successColor = lipgloss.Color("#2DA44E")
	infoColor    = lipgloss.Color("#0969DA")
	errorColor   = lipgloss.Color("#CF222E")
	dimColor     = lipgloss.Color("#6E7681")
)

type styles struct {
	notification map[models.NotificationKind]lipgloss.Style
	dim          lipgloss.Style
}

func newStyles(renderer *lipgloss.Renderer) styles {
	toast := func(color lipgloss.Color) lipgloss.Style {
		return renderer.NewStyle().
			Foreground(color).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(color)
	}

	return styles{
		notification: map[models.NotificationKind]lipgloss.Style{
			models.KindSuccess: toast(successColor),
			models.KindInfo:    toast(infoColor),
			models.KindError:   toast(errorColor),
		},
		dim: renderer.NewStyle().Foreground(dimColor).Italic(true),
	}
}
