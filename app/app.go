// Package app wires together the subsystems a host needs to drive
// gridql: a registry of loaded tables, the query engine driver, the
// buffer manager, and the live view state for whichever buffer is
// current. Grounded on the teacher's NewEditor/EditorState
// orchestration shape (app/editor.go, state/state.go), minus the
// tcell screen and event-loop plumbing, which is out of scope per
// spec.md §1.
package app

import (
	"fmt"

	"github.com/TimelordUK/sql-cli-go/buffer"
	"github.com/TimelordUK/sql-cli-go/config"
	"github.com/TimelordUK/sql-cli-go/datatable"
	"github.com/TimelordUK/sql-cli-go/gridqlerr"
	"github.com/TimelordUK/sql-cli-go/query/engine"
	"github.com/TimelordUK/sql-cli-go/viewport"
)

// App holds every subsystem instance a host (TUI, script, or test)
// needs to load data, run queries, and navigate results.
type App struct {
	Config  config.Config
	Tables  *TableRegistry
	Driver  *engine.Driver
	Buffers *buffer.BufferManager

	// Live is the ViewState for whichever buffer is current; the
	// coordinator moves it into and out of buffers on switch (see
	// SwitchBuffer).
	Live buffer.ViewState
}

// TableRegistry is the engine.TableSource every loaded table is
// registered into, so a query's FROM clause can resolve to any table
// the host has opened, not only the current buffer's.
type TableRegistry struct {
	tables map[string]*datatable.DataTable
}

// NewTableRegistry returns an empty registry.
func NewTableRegistry() *TableRegistry {
	return &TableRegistry{tables: make(map[string]*datatable.DataTable)}
}

// Table implements engine.TableSource.
func (r *TableRegistry) Table(name string) (*datatable.DataTable, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Register adds or replaces the table under its own name.
func (r *TableRegistry) Register(t *datatable.DataTable) {
	r.tables[t.Name()] = t
}

// New constructs an App from cfg with an empty table registry and
// buffer manager.
func New(cfg config.Config) *App {
	registry := NewTableRegistry()
	return &App{
		Config:  cfg,
		Tables:  registry,
		Driver:  engine.New(registry, !cfg.Behavior.CaseInsensitiveDefault, cfg.Behavior.MaxDisplayRows),
		Buffers: buffer.NewBufferManager(),
		Live:    buffer.DefaultViewState(),
	}
}

// LayoutOptions returns the viewport.LayoutOptions a host should use to
// compute column layouts, driven by a.Config (spec.md §6.3
// display.compact_mode).
func (a *App) LayoutOptions() viewport.LayoutOptions {
	opts := viewport.DefaultLayoutOptions()
	opts.CompactMode = a.Config.Display.CompactMode
	return opts
}

// OpenTable registers table, opens a new buffer for it, makes that
// buffer current, and — per behavior.auto_execute_on_load — runs
// `SELECT * FROM <name>` immediately.
func (a *App) OpenTable(table *datatable.DataTable) (*buffer.Buffer, error) {
	a.Tables.Register(table)

	b := buffer.NewBuffer(table.Name())
	b.Table = table
	a.Buffers.NewBuffer(b)
	a.Live = buffer.DefaultViewState()

	if !a.Config.Behavior.AutoExecuteOnLoad {
		return b, nil
	}
	if err := a.ExecuteQuery(fmt.Sprintf("SELECT * FROM %s", table.Name())); err != nil {
		return b, err
	}
	return b, nil
}

// ExecuteQuery runs queryText through the driver and, on success,
// replaces the current buffer's DataView with the result, per spec.md
// §4.6.
func (a *App) ExecuteQuery(queryText string) error {
	b := a.Buffers.Current()
	if b == nil {
		return &gridqlerr.NoActiveBufferError{}
	}

	view, err := a.Driver.Execute(queryText)
	if err != nil {
		return err
	}
	b.QueryText = queryText
	b.View = view
	return nil
}

// SwitchBuffer saves the live view state into the current buffer (if
// any), switches the BufferManager to idx, and restores that buffer's
// saved state into Live, per spec.md §4.5.
func (a *App) SwitchBuffer(idx int) bool {
	if cur := a.Buffers.Current(); cur != nil {
		buffer.SaveToBuffer(cur, &a.Live)
	}
	if !a.Buffers.SwitchTo(idx) {
		return false
	}
	buffer.RestoreFromBuffer(a.Buffers.Current(), &a.Live)
	return true
}

// QuickSwapBuffer is SwitchBuffer's analogue for toggling between the
// current and previous buffer.
func (a *App) QuickSwapBuffer() bool {
	if cur := a.Buffers.Current(); cur != nil {
		buffer.SaveToBuffer(cur, &a.Live)
	}
	if !a.Buffers.QuickSwap() {
		return false
	}
	buffer.RestoreFromBuffer(a.Buffers.Current(), &a.Live)
	return true
}
