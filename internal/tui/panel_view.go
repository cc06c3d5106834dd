package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dongho-jung/vcsettings/internal/constants"
	"github.com/dongho-jung/vcsettings/internal/embed"
	"github.com/dongho-jung/vcsettings/internal/settings"
	"github.com/dongho-jung/vcsettings/internal/viewmodel"
)

const (
	defaultWidth = 80
	sliderWidth  = 48
)

const settingsHint = `Hint: You can change the position of this settings section in the settings of the "Settings" plugin!`

// View renders the panel.
func (p *Panel) View() string {
	if p.done {
		return ""
	}

	items := p.items()
	p.clampCursor(len(items))
	width := p.width
	if width <= 0 {
		width = defaultWidth
	}

	var sections []string
	sections = append(sections, p.styles.title.Render(constants.DisplayName))

	var buttons []string
	togglesStarted := false
	for i, it := range items {
		focused := i == p.cursor
		switch it.kind {
		case itemDonate:
			sections = append(sections, p.renderDonate(i, focused))
		case itemAction:
			buttons = append(buttons, p.renderButton(i, it.action, focused))
		case itemToggle:
			if !togglesStarted {
				togglesStarted = true
				sections = append(sections, p.renderQuickActions(buttons))
				sections = append(sections,
					p.styles.section.Render("Settings"),
					p.styles.note.Render(settingsHint),
				)
			}
			sections = append(sections, p.renderToggle(i, it.toggle, focused))
		case itemStyle:
			if !togglesStarted {
				togglesStarted = true
				sections = append(sections, p.renderQuickActions(buttons))
			}
			sections = append(sections, p.renderStyle(i, focused))
		case itemPosition:
			sections = append(sections, p.renderPosition(i, focused))
		case itemTimeout:
			sections = append(sections, p.renderTimeout(i, focused))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	var footer []string
	if p.status != "" {
		style := p.styles.status
		if p.statusErr {
			style = p.styles.statusError
		}
		footer = append(footer, style.Render(p.status))
	}
	footer = append(footer, p.help.View(p.keys))

	view := lipgloss.JoinVertical(lipgloss.Left, body, "", strings.Join(footer, "\n"))
	if p.toast != nil {
		box := lipgloss.PlaceHorizontal(width, lipgloss.Right, p.renderToast())
		if p.toast.position == settings.NotificationPositionTopRight {
			view = lipgloss.JoinVertical(lipgloss.Left, box, view)
		} else {
			view = lipgloss.JoinVertical(lipgloss.Left, view, box)
		}
	}
	return p.zones.Scan(view)
}

func (p *Panel) cursorMark(focused bool) string {
	if focused {
		return p.styles.selected.Render("› ")
	}
	return "  "
}

func (p *Panel) renderDonate(i int, focused bool) string {
	button := p.styles.button
	if focused {
		button = p.styles.buttonFocused
	}
	text := lipgloss.JoinVertical(lipgloss.Left,
		p.styles.title.Render("Support the Project"),
		p.styles.text.Render("Please consider supporting the development of "+constants.ClientName+" by donating!"),
		"",
		p.zones.Mark(zoneID(i), button.Render("♥ Donate")),
	)
	art := p.styles.note.Render(renderArtwork(p.artwork))
	return p.styles.card.Render(lipgloss.JoinHorizontal(lipgloss.Center, text, "  ", art))
}

// renderArtwork draws tilted art with each line shifted a little further
// left than the one above it.
func renderArtwork(a embed.Artwork) string {
	if !a.Tilted {
		return a.Art
	}
	lines := strings.Split(a.Art, "\n")
	for j, line := range lines {
		lines[j] = strings.Repeat(" ", (len(lines)-j)/2) + line
	}
	return strings.Join(lines, "\n")
}

func (p *Panel) renderButton(i int, a viewmodel.Action, focused bool) string {
	style := p.styles.button
	switch {
	case a.Disabled:
		style = p.styles.buttonDisabled
	case focused:
		style = p.styles.buttonFocused
	}
	label := a.Label
	if focused && a.Disabled {
		label = "› " + label
	}
	return p.zones.Mark(zoneID(i), style.Render(label))
}

func (p *Panel) renderQuickActions(buttons []string) string {
	row := strings.Join(buttons, " ")

	var dir string
	switch {
	case p.dir.Pending:
		dir = p.spinner.View() + " " + p.styles.note.Render(p.dir.Display())
	case p.dir.Err != nil:
		dir = p.styles.statusError.Render("unavailable")
	default:
		dir = p.styles.text.Render(p.dir.Display())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		p.styles.section.Render("Quick Actions"),
		p.styles.card.Render(lipgloss.JoinVertical(lipgloss.Left,
			row,
			p.styles.note.Render("Settings folder: ")+dir,
		)),
	)
}

func (p *Panel) renderToggle(i int, row viewmodel.ToggleRow, focused bool) string {
	box := "[ ]"
	if p.snapshot.Value(row.Key) == true {
		box = "[x]"
	}
	title := p.styles.text.Render(box + " " + row.Title)
	if focused {
		title = p.styles.selected.Render(box + " " + row.Title)
	}
	line := p.cursorMark(focused) + title
	if row.Note != "" {
		line += "\n      " + p.styles.note.Render(row.Note)
	}
	return p.zones.Mark(zoneID(i), line)
}

func renderOptions[T ~string](st styles, opts []viewmodel.Option[T], selected T, disabled, focused bool) string {
	lines := make([]string, 0, len(opts))
	for _, o := range opts {
		prefix, mark := "  ", "( )"
		style := st.disabledIf(disabled, st.text)
		if o.Value == selected {
			mark = "(•)"
			style = st.disabledIf(disabled, st.selected)
			if focused {
				prefix = st.selected.Render("› ")
			}
		}
		lines = append(lines, prefix+style.Render(mark+" "+o.Label))
	}
	return strings.Join(lines, "\n")
}

func (p *Panel) renderStyle(i int, focused bool) string {
	n := p.snapshot.Notifications
	controls := viewmodel.NewNotificationControls(n)

	parts := []string{p.styles.section.Render("Notification Style")}
	if viewmodel.ShowPermissionWarning(n.UseNative, p.permission) {
		parts = append(parts, p.styles.errorCard.Render(lipgloss.JoinVertical(lipgloss.Left,
			p.styles.errorTitle.Render("Desktop Notification Permission denied"),
			p.styles.text.Render("You have denied Notification Permissions. Thus, Desktop notifications will not work!"),
		)))
	}
	parts = append(parts,
		p.styles.note.Render("Some plugins may show you notifications. These come in two styles:"),
		p.styles.note.Render("  • "+constants.ClientName+" Notifications: These are in-app notifications"),
		p.styles.note.Render("  • Desktop Notifications: Native Desktop notifications (like when you get a ping)"),
		p.zones.Mark(zoneID(i),
			renderOptions(p.styles, controls.Style.Options, controls.Style.Selected, false, focused)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (p *Panel) renderPosition(i int, focused bool) string {
	controls := viewmodel.NewNotificationControls(p.snapshot.Notifications)
	sel := controls.Position
	return lipgloss.JoinVertical(lipgloss.Left,
		p.styles.section.Render("Notification Position"),
		p.zones.Mark(zoneID(i),
			renderOptions(p.styles, sel.Options, sel.Selected, sel.Disabled, focused)),
	)
}

func (p *Panel) renderTimeout(i int, focused bool) string {
	slider := viewmodel.NewNotificationControls(p.snapshot.Notifications).Timeout
	return lipgloss.JoinVertical(lipgloss.Left,
		p.styles.section.Render("Notification Timeout"),
		p.styles.note.Render("Set to 0s to never automatically time out"),
		p.zones.Mark(zoneID(i), p.cursorMark(focused)+renderSlider(p.styles, slider)),
		"  "+renderMarkers(p.styles, slider),
	)
}

// sliderPos maps v onto a column of the slider track.
func sliderPos(s viewmodel.Slider, v int) int {
	if s.Max <= s.Min {
		return 0
	}
	return (v - s.Min) * (sliderWidth - 1) / (s.Max - s.Min)
}

func renderSlider(st styles, s viewmodel.Slider) string {
	pos := sliderPos(s, s.Value)
	fill := st.disabledIf(s.Disabled, st.sliderFill)
	track := fill.Render(strings.Repeat("━", pos)) +
		fill.Render("●") +
		st.sliderEmpty.Render(strings.Repeat("─", sliderWidth-1-pos))
	return fmt.Sprintf("%s %s", track, st.disabledIf(s.Disabled, st.text).Render(viewmodel.FormatTimeout(s.Value)))
}

func renderMarkers(st styles, s viewmodel.Slider) string {
	line := []rune(strings.Repeat(" ", sliderWidth+8))
	next := 0
	for _, m := range s.Markers {
		label := []rune(viewmodel.FormatMarker(m))
		pos := sliderPos(s, m)
		if pos < next {
			pos = next
		}
		if pos+len(label) > len(line) {
			pos = len(line) - len(label)
		}
		copy(line[pos:], label)
		next = pos + len(label) + 1
	}
	return st.note.Render(strings.TrimRight(string(line), " "))
}

func (p *Panel) renderToast() string {
	hint := "x to dismiss"
	if timeout := p.snapshot.Notifications.Timeout; timeout > 0 {
		hint = "closes after " + viewmodel.FormatTimeout(timeout)
	}
	return p.styles.toast.Render(lipgloss.JoinVertical(lipgloss.Left,
		p.styles.title.Render(p.toast.title),
		p.styles.text.Render(p.toast.body),
		p.styles.note.Render(hint),
	))
}
