package tui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/dongho-jung/vcsettings/internal/constants"
	"github.com/dongho-jung/vcsettings/internal/embed"
	"github.com/dongho-jung/vcsettings/internal/host"
	"github.com/dongho-jung/vcsettings/internal/logging"
	"github.com/dongho-jung/vcsettings/internal/notify"
	"github.com/dongho-jung/vcsettings/internal/settings"
	"github.com/dongho-jung/vcsettings/internal/viewmodel"
)

// changeBuffer bounds queued store changes between renders.
const changeBuffer = 64

type itemKind int

const (
	itemDonate itemKind = iota
	itemAction
	itemToggle
	itemStyle
	itemPosition
	itemTimeout
)

// item is one focusable row of the panel.
type item struct {
	kind   itemKind
	action viewmodel.Action
	toggle viewmodel.ToggleRow
}

func zoneID(i int) string {
	return fmt.Sprintf("item-%d", i)
}

type settingsDirMsg struct {
	path string
	err  error
}

type permissionMsg struct {
	permission notify.Permission
}

type settingChangedMsg struct {
	change settings.Change
}

type actionDoneMsg struct {
	id  viewmodel.ActionID
	err error
}

type toastExpiredMsg struct {
	id int
}

// toast is an in-app notification drawn inside the panel.
type toast struct {
	id       int
	title    string
	body     string
	position settings.NotificationPosition
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithArtworkDraw fixes the random draw used to pick the donate artwork.
func WithArtworkDraw(draw float64) PanelOption {
	return func(p *Panel) {
		p.draw = draw
	}
}

// WithFocused sets the initial focus state used to route test notifications.
func WithFocused(focused bool) PanelOption {
	return func(p *Panel) {
		p.focused = focused
	}
}

// Panel is the settings panel model.
type Panel struct {
	store *settings.Store
	host  host.Host
	env   viewmodel.Env

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	zones   *zone.Manager
	styles  styles

	draw       float64
	artwork    embed.Artwork
	permission notify.Permission
	dir        viewmodel.DirState
	snapshot   settings.Settings

	cursor  int
	focused bool
	width   int
	height  int

	status    string
	statusErr bool
	toast     *toast
	toastSeq  int

	ownWrites map[settings.Key][]any
	changes   chan settings.Change
	subID     string
	closeOnce sync.Once

	ctx    context.Context
	cancel context.CancelFunc

	relaunch bool
	done     bool
}

// PanelResult is returned when the panel exits.
type PanelResult struct {
	// Relaunch is set when the user asked to restart the client.
	Relaunch bool
}

// NewPanel creates a panel bound to store and h.
func NewPanel(store *settings.Store, h host.Host, env viewmodel.Env, opts ...PanelOption) *Panel {
	logging.Debug("-> NewPanel(web=%v, windows=%v)", env.IsWeb, env.IsWindows)
	defer logging.Debug("<- NewPanel")

	ctx, cancel := context.WithCancel(context.Background())
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = newStyles().note

	p := &Panel{
		store:      store,
		host:       h,
		env:        env,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		zones:      zone.New(),
		styles:     newStyles(),
		draw:       rand.Float64(),
		permission: notify.PermissionDefault,
		dir:        viewmodel.PendingDir(),
		snapshot:   store.Snapshot(),
		focused:    true,
		ownWrites:  make(map[settings.Key][]any),
		changes:    make(chan settings.Change, changeBuffer),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(p)
	}

	arts, err := embed.Artworks()
	if err != nil {
		logging.Warn("failed to load donate artwork: %v", err)
	}
	p.artwork = embed.PickArtwork(arts, p.draw)

	p.subID = store.SubscribeAll(func(c settings.Change) {
		select {
		case p.changes <- c:
		default:
			logging.Debug("panel: change queue full, dropping %s", c.Key)
		}
	})
	return p
}

// Close releases the store subscription and stops pending lookups.
func (p *Panel) Close() {
	p.closeOnce.Do(func() {
		p.store.Unsubscribe(p.subID)
		p.cancel()
		p.zones.Close()
	})
}

// Result returns the panel result.
func (p *Panel) Result() PanelResult {
	return PanelResult{Relaunch: p.relaunch}
}

// Artwork returns the donate artwork chosen at construction.
func (p *Panel) Artwork() embed.Artwork {
	return p.artwork
}

// Init starts the asynchronous lookups.
func (p *Panel) Init() tea.Cmd {
	return tea.Batch(
		p.fetchSettingsDir(),
		p.probePermission(),
		p.waitForChange(),
		p.spinner.Tick,
	)
}

func (p *Panel) fetchSettingsDir() tea.Cmd {
	ctx, h := p.ctx, p.host
	return func() tea.Msg {
		path, err := h.SettingsDir(ctx)
		return settingsDirMsg{path: path, err: err}
	}
}

func (p *Panel) probePermission() tea.Cmd {
	h := p.host
	return func() tea.Msg {
		return permissionMsg{permission: h.NotificationPermission()}
	}
}

func (p *Panel) waitForChange() tea.Cmd {
	ctx, changes := p.ctx, p.changes
	return func() tea.Msg {
		select {
		case c := <-changes:
			return settingChangedMsg{change: c}
		case <-ctx.Done():
			return nil
		}
	}
}

// items lists the focusable rows in display order.
func (p *Panel) items() []item {
	items := []item{{kind: itemDonate}}
	for _, a := range viewmodel.QuickActions(p.env, p.dir) {
		items = append(items, item{kind: itemAction, action: a})
	}
	for _, a := range viewmodel.ExtraActions(p.dir) {
		items = append(items, item{kind: itemAction, action: a})
	}
	for row := range viewmodel.ToggleRows(p.env) {
		items = append(items, item{kind: itemToggle, toggle: row})
	}
	return append(items,
		item{kind: itemStyle},
		item{kind: itemPosition},
		item{kind: itemTimeout},
	)
}

func (p *Panel) clampCursor(n int) {
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Update handles messages and updates the model.
func (p *Panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width
		return p, nil

	case tea.FocusMsg:
		p.focused = true
		return p, nil

	case tea.BlurMsg:
		p.focused = false
		return p, nil

	case spinner.TickMsg:
		if !p.dir.Pending {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case settingsDirMsg:
		p.dir = viewmodel.DirState{Path: msg.path, Err: msg.err}
		if msg.err != nil {
			logging.Warn("failed to resolve settings directory: %v", msg.err)
		} else {
			logging.Debug("panel: settings directory resolved to %s", msg.path)
		}
		p.clampCursor(len(p.items()))
		return p, nil

	case permissionMsg:
		p.permission = msg.permission
		return p, nil

	case settingChangedMsg:
		p.applyChange(msg.change)
		return p, p.waitForChange()

	case actionDoneMsg:
		if msg.err != nil {
			logging.Warn("action %s failed: %v", msg.id, msg.err)
			p.setError(fmt.Sprintf("%s failed: %v", msg.id, msg.err))
		}
		return p, nil

	case toastExpiredMsg:
		if p.toast != nil && p.toast.id == msg.id {
			p.toast = nil
		}
		return p, nil

	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *Panel) applyChange(c settings.Change) {
	if pending := p.ownWrites[c.Key]; len(pending) > 0 && pending[0] == c.New {
		p.ownWrites[c.Key] = pending[1:]
	} else {
		p.setStatus(fmt.Sprintf("%s changed to %s on disk", c.Key, settings.FormatValue(c.New)))
	}
	p.snapshot = p.store.Snapshot()
}

func (p *Panel) setStatus(s string) {
	p.status = s
	p.statusErr = false
}

func (p *Panel) setError(s string) {
	p.status = s
	p.statusErr = true
}

func (p *Panel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := p.items()
	p.clampCursor(len(items))

	switch {
	case key.Matches(msg, p.keys.Quit):
		p.done = true
		return p, tea.Quit
	case key.Matches(msg, p.keys.Help):
		p.help.ShowAll = !p.help.ShowAll
		return p, nil
	case key.Matches(msg, p.keys.Dismiss):
		p.toast = nil
		return p, nil
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil
	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(items)-1 {
			p.cursor++
		}
		return p, nil
	case key.Matches(msg, p.keys.PrevMarker):
		return p.adjust(items[p.cursor], -1, true)
	case key.Matches(msg, p.keys.NextMarker):
		return p.adjust(items[p.cursor], 1, true)
	case key.Matches(msg, p.keys.Left):
		return p.adjust(items[p.cursor], -1, false)
	case key.Matches(msg, p.keys.Right):
		return p.adjust(items[p.cursor], 1, false)
	case key.Matches(msg, p.keys.Activate):
		return p.activate(items[p.cursor])
	}
	return p, nil
}

func (p *Panel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil
	case msg.Button == tea.MouseButtonWheelDown:
		if p.cursor < len(p.items())-1 {
			p.cursor++
		}
		return p, nil
	case msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft:
		return p, nil
	}

	items := p.items()
	for i, it := range items {
		if p.zones.Get(zoneID(i)).InBounds(msg) {
			p.cursor = i
			return p.activate(it)
		}
	}
	return p, nil
}

// activate presses a button, flips a toggle, or advances a selector.
func (p *Panel) activate(it item) (tea.Model, tea.Cmd) {
	switch it.kind {
	case itemDonate:
		return p, p.runAction("donate", func() error { return p.host.OpenURL(constants.DonateURL) })
	case itemAction:
		return p.runQuickAction(it.action)
	case itemToggle:
		current := p.store.Bool(it.toggle.Key)
		p.write(it.toggle.Key, func() error {
			return p.store.SetBool(it.toggle.Key, !current)
		})
		return p, nil
	case itemTimeout:
		return p.adjust(it, 1, true)
	default:
		return p.adjust(it, 1, false)
	}
}

// adjust moves a selector or the timeout slider by delta.
func (p *Panel) adjust(it item, delta int, marker bool) (tea.Model, tea.Cmd) {
	n := p.store.Notifications()
	controls := viewmodel.NewNotificationControls(n)

	switch it.kind {
	case itemStyle:
		next := viewmodel.CycleOption(controls.Style.Options, n.UseNative, delta)
		p.write(settings.KeyNotificationStyle, func() error {
			return p.store.SetNotificationStyle(next)
		})
	case itemPosition:
		if controls.Position.Disabled {
			p.setError("Notification position is disabled while desktop notifications are always used")
			return p, nil
		}
		next := viewmodel.CycleOption(controls.Position.Options, n.Position, delta)
		p.write(settings.KeyNotificationPosition, func() error {
			return p.store.SetNotificationPosition(next)
		})
	case itemTimeout:
		if controls.Timeout.Disabled {
			p.setError("Notification timeout is disabled while desktop notifications are always used")
			return p, nil
		}
		var next int
		switch {
		case marker && delta > 0:
			next = viewmodel.NextMarker(n.Timeout)
		case marker:
			next = viewmodel.PrevMarker(n.Timeout)
		default:
			next = viewmodel.StepTimeout(n.Timeout, delta*constants.NotificationTimeoutStep)
		}
		p.write(settings.KeyNotificationTimeout, func() error {
			return p.store.SetNotificationTimeout(next)
		})
	}
	return p, nil
}

// write performs one store write and refreshes the snapshot. The store
// publishes only when the stored value changes, so an own write is counted
// only then.
func (p *Panel) write(k settings.Key, set func() error) {
	before := p.store.Get(k)
	if err := set(); err != nil {
		logging.Error("failed to save %s: %v", k, err)
		p.setError(fmt.Sprintf("Failed to save %s: %v", k, err))
		return
	}
	if after := p.store.Get(k); after != before {
		p.ownWrites[k] = append(p.ownWrites[k], after)
	}
	p.snapshot = p.store.Snapshot()
	p.setStatus(fmt.Sprintf("Saved %s = %s", k, settings.FormatValue(p.snapshot.Value(k))))
}

func (p *Panel) runAction(id viewmodel.ActionID, fn func() error) tea.Cmd {
	logging.Debug("panel: running action %s", id)
	return func() tea.Msg {
		return actionDoneMsg{id: id, err: fn()}
	}
}

func (p *Panel) runQuickAction(a viewmodel.Action) (tea.Model, tea.Cmd) {
	if a.Disabled {
		p.setError(fmt.Sprintf("%s is unavailable until the settings folder is known", a.Label))
		return p, nil
	}

	h, dir := p.host, p.dir.Path
	switch a.ID {
	case viewmodel.ActionRestart:
		p.relaunch = true
		p.done = true
		return p, tea.Quit
	case viewmodel.ActionOpenQuickCSS:
		path := constants.QuickCSSFileIn(dir)
		return p, p.runAction(a.ID, func() error { return h.OpenEditor(path) })
	case viewmodel.ActionOpenSettingsDir:
		return p, p.runAction(a.ID, func() error { return h.OpenFolder(dir) })
	case viewmodel.ActionOpenGitHub:
		return p, p.runAction(a.ID, func() error { return h.OpenURL(constants.ProjectURL) })
	case viewmodel.ActionCopySettingsDir:
		p.setStatus("Copied " + dir)
		return p, p.runAction(a.ID, func() error { return h.CopyToClipboard(dir) })
	case viewmodel.ActionTestNotify:
		return p, p.testNotification()
	}
	return p, nil
}

// testNotification previews a notification the way the current style would
// route it.
func (p *Panel) testNotification() tea.Cmd {
	const title = constants.DisplayName
	const body = "This is a test notification"

	n := p.snapshot.Notifications
	if notify.Route(n.UseNative, p.focused) == notify.SurfaceDesktop {
		p.setStatus("Sent desktop notification")
		h := p.host
		return p.runAction(viewmodel.ActionTestNotify, func() error {
			return h.SendNotification(title, body)
		})
	}

	p.toastSeq++
	p.toast = &toast{id: p.toastSeq, title: title, body: body, position: n.Position}
	p.setStatus("Showing in-app notification")
	if n.Timeout == 0 {
		return nil
	}
	id := p.toastSeq
	return tea.Tick(time.Duration(n.Timeout)*time.Millisecond, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// RunPanel runs the settings panel until the user quits. The store is
// watched for external edits while the panel is open.
func RunPanel(store *settings.Store, h host.Host, env viewmodel.Env, opts ...PanelOption) (*PanelResult, error) {
	logging.Debug("-> RunPanel")
	defer logging.Debug("<- RunPanel")

	timer := logging.StartTimer("settings panel")
	defer timer.Stop()

	p := NewPanel(store, h, env, opts...)
	defer p.Close()

	go func() {
		if err := store.Watch(p.ctx); err != nil {
			logging.Warn("settings watcher stopped: %v", err)
		}
	}()

	prog := tea.NewProgram(p, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	finalModel, err := prog.Run()
	if err != nil {
		logging.Debug("RunPanel: tea.Program.Run failed: %v", err)
		return nil, err
	}

	result := finalModel.(*Panel).Result()
	logging.Debug("RunPanel: completed, relaunch=%v", result.Relaunch)
	return &result, nil
}
