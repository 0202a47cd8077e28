package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/tradebot/internal/application/supervisor"
	"github.com/bnema/tradebot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now          time.Time
	CrashCeiling int
}

func renderView(statuses []supervisor.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Trade Identities"),
		s.header.Render(fmt.Sprintf("identities: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No identities configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderIdentity(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderIdentity(status supervisor.Status, opts RenderOptions, s styles) string {
	identity := status.Identity
	parts := []string{
		s.identity.Render(identityTitle(identity)),
		s.detail.Render(fmt.Sprintf("steam id: %s  handler: %s", identity.SteamID, handlerLabel(identity.Handler))),
		adminLine(identity, s),
	}

	if status.State != "" {
		parts = append(parts, stateLine(status, opts, s))
		parts = append(parts, crashLine(status.Crashes, opts.CrashCeiling, s))
		if status.LastError != "" {
			parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, s.warning.Render("last error:"), " ", s.detail.Render(status.LastError)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func identityTitle(identity domain.Identity) string {
	name := strings.TrimSpace(identity.DisplayName)
	if name == "" || name == string(identity.ID) {
		return string(identity.ID)
	}
	return fmt.Sprintf("%s (%s)", name, identity.ID)
}

func handlerLabel(handler string) string {
	if handler == "" {
		return domain.DefaultHandler
	}
	return handler
}

func adminLine(identity domain.Identity, s styles) string {
	if len(identity.Admins) == 0 {
		return s.warning.Render("admins: none (every trade will be refused)")
	}
	return s.detail.Render("admins: " + strings.Join(identity.Admins, ", "))
}

func stateLine(status supervisor.Status, opts RenderOptions, s styles) string {
	style := s.stateIdle
	switch status.State {
	case supervisor.StateRunning:
		style = s.stateOK
	case supervisor.StateCrashed, supervisor.StatePermanentlyStopped:
		style = s.stateBad
	}

	parts := []string{s.detail.Render("state:"), " ", style.Render(string(status.State))}
	if since := formatSince(status.Since, opts.Now); since != "" {
		parts = append(parts, " ", s.header.Render("("+since+")"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func crashLine(crashes, ceiling int, s styles) string {
	if ceiling <= 0 {
		return s.detail.Render(fmt.Sprintf("crashes: %d", crashes))
	}

	used := 100 * float64(crashes) / float64(ceiling)
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.detail.Render("crashes:"),
		" ",
		renderProgressBar(used, 24, s),
		" ",
		s.detail.Render(fmt.Sprintf("%d/%d", crashes, ceiling)),
	)
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(usedPercent) / 100.0))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatSince(since, now time.Time) string {
	if since.IsZero() || now.IsZero() || since.After(now) {
		return ""
	}

	elapsed := now.Sub(since)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("for %dm", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("for %dh%02dm", int(elapsed.Hours()), int(elapsed.Minutes())%60)
	default:
		return fmt.Sprintf("since %s", since.Format("15:04 on 02 Jan"))
	}
}
