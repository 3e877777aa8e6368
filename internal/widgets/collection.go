package widgets

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/ift-institute/ift-site/internal/collection"
	"github.com/ift-institute/ift-site/internal/validation"
)

// ErrMaxItems indicates an Add against a collection already at capacity.
var ErrMaxItems = errors.New("widgets: collection is full")

// ErrNoSession indicates a collection mutation without a content session.
var ErrNoSession = errors.New("widgets: no content session")

// Collection renders and mutates one ordered item list stored under a single
// key. Mutations always operate on the canonical stored order; DisplayItems
// only reshapes what the page shows.
type Collection struct {
	Key    string
	Title  string
	Schema collection.Schema

	// Defaults seed the list when nothing is stored. Each declared item
	// carries a stable id so the identities rendered into edit controls
	// keep matching across requests.
	Defaults []collection.Item

	// MaxItems caps the list length, zero means unbounded.
	MaxItems int

	// DisplayItems reshapes the rendered view (filter, sort, slice) without
	// touching the stored order.
	DisplayItems func([]collection.Item) []collection.Item

	// ItemClass styles one rendered item; RenderItem replaces the default
	// field dump with page-specific markup.
	ItemClass  func(item collection.Item, index int) string
	RenderItem func(item collection.Item, index int) template.HTML

	Class string
}

// Items returns the canonical item list: the stored value when it is a
// well-shaped list, the declared defaults otherwise, ids assigned either way.
func (e *Env) Items(c Collection) []collection.Item {
	stored := e.content(c.Key, nil)
	if stored != nil {
		if e.ShapeChecks {
			if err := validation.ItemListShape().Check(stored); err != nil {
				if e.Logger != nil {
					e.Logger.Warn("stored collection failed shape check, using defaults",
						"key", c.Key, "issues", validation.IssuesOf(err))
				}
				return collection.Normalize(c.Defaults)
			}
		}
		if items := collection.FromAny(stored); items != nil {
			return collection.Normalize(items)
		}
	}
	return collection.Normalize(c.Defaults)
}

// AddItem appends a new item built from values, with a fresh identity, and
// persists the extended list. Adding to a full collection is refused.
func (e *Env) AddItem(ctx context.Context, c Collection, values collection.Item) (collection.Item, error) {
	if e.Session == nil {
		return nil, ErrNoSession
	}
	items := e.Items(c)
	if c.MaxItems > 0 && len(items) >= c.MaxItems {
		return nil, ErrMaxItems
	}
	items, added := collection.Add(items, values)
	e.Session.UpdateContent(ctx, c.Key, collection.ToAny(items))
	return added, nil
}

// UpdateItem merges changes into the item with the given id and persists.
// A miss leaves the stored value untouched and writes nothing.
func (e *Env) UpdateItem(ctx context.Context, c Collection, id string, changes collection.Item) error {
	return e.mutate(ctx, c, func(items []collection.Item) ([]collection.Item, bool) {
		return collection.Update(items, id, changes)
	})
}

// DeleteItem removes the item with the given id and persists. A miss leaves
// the stored value untouched and writes nothing.
func (e *Env) DeleteItem(ctx context.Context, c Collection, id string) error {
	return e.mutate(ctx, c, func(items []collection.Item) ([]collection.Item, bool) {
		return collection.Delete(items, id)
	})
}

// MoveItemUp swaps the item with its previous neighbour and persists.
func (e *Env) MoveItemUp(ctx context.Context, c Collection, id string) error {
	return e.mutate(ctx, c, func(items []collection.Item) ([]collection.Item, bool) {
		return collection.MoveUp(items, id)
	})
}

// MoveItemDown swaps the item with its next neighbour and persists.
func (e *Env) MoveItemDown(ctx context.Context, c Collection, id string) error {
	return e.mutate(ctx, c, func(items []collection.Item) ([]collection.Item, bool) {
		return collection.MoveDown(items, id)
	})
}

// mutate persists the applied list only when something actually changed, so
// a miss or boundary no-op never writes under the key.
func (e *Env) mutate(ctx context.Context, c Collection, apply func([]collection.Item) ([]collection.Item, bool)) error {
	if e.Session == nil {
		return ErrNoSession
	}
	items, changed := apply(e.Items(c))
	if !changed {
		return nil
	}
	e.Session.UpdateContent(ctx, c.Key, collection.ToAny(items))
	return nil
}

// Collection renders the widget against the current session state: the
// display view of the items plus, in edit mode, the per-item controls and
// the add affordance.
func (e *Env) Collection(c Collection) template.HTML {
	items := e.Items(c)
	display := items
	if c.DisplayItems != nil {
		display = c.DisplayItems(items)
	}
	editing := e.editing()
	base := e.basePath()

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="cms-collection %s" data-cms-key="%s">`, attr(c.Class), attr(c.Key))

	for i, item := range display {
		class := "cms-item"
		if c.ItemClass != nil {
			if extra := c.ItemClass(item, i); extra != "" {
				class += " " + extra
			}
		}
		fmt.Fprintf(&b, `<div class="%s" data-cms-item="%s">`, attr(class), attr(item.ID()))
		if c.RenderItem != nil {
			b.WriteString(string(c.RenderItem(item, i)))
		} else {
			b.WriteString(string(e.defaultItemView(c.Schema, item)))
		}
		if editing {
			b.WriteString(e.itemControls(base, c.Key, item.ID()))
		}
		b.WriteString(`</div>`)
	}

	if editing {
		if c.MaxItems > 0 && len(items) >= c.MaxItems {
			b.WriteString(`<button type="button" class="cms-add" disabled>Add</button>`)
		} else {
			form, err := e.Forms.Form(c.Schema, collection.Item{},
				fmt.Sprintf("%s/collections/%s/items", base, c.Key), "Add "+c.Title)
			if err == nil {
				fmt.Fprintf(&b, `<details class="cms-add"><summary>Add</summary>%s</details>`, form)
			} else if e.Logger != nil {
				e.Logger.Error("failed to render add form", "key", c.Key, "error", err)
			}
		}
	}

	b.WriteString(`</div>`)
	return template.HTML(b.String())
}

func (e *Env) defaultItemView(schema collection.Schema, item collection.Item) template.HTML {
	var b strings.Builder
	for _, field := range schema {
		value, ok := item[field.Key].(string)
		if !ok || value == "" {
			continue
		}
		switch field.Type {
		case collection.FieldImage:
			fmt.Fprintf(&b, `<img src="%s" alt="%s">`, attr(value), attr(field.Label))
		case collection.FieldVideo:
			fmt.Fprintf(&b, `<video src="%s" controls></video>`, attr(value))
		default:
			fmt.Fprintf(&b, `<div class="cms-item-%s">%s</div>`, attr(field.Key), e.renderMarkdown(value))
		}
	}
	return template.HTML(b.String())
}

func (e *Env) itemControls(base, key, id string) string {
	var b strings.Builder
	b.WriteString(`<div class="cms-item-controls">`)
	for _, op := range []struct{ action, label, class string }{
		{"move-up", "Up", "cms-move-up"},
		{"move-down", "Down", "cms-move-down"},
		{"delete", "Delete", "cms-delete"},
	} {
		fmt.Fprintf(&b, `<form method="post" action="%s/collections/%s/items/%s/%s">`,
			base, attr(key), attr(id), op.action)
		confirm := ""
		if op.action == "delete" {
			confirm = ` data-confirm="Delete this item?"`
		}
		fmt.Fprintf(&b, `<button type="submit" class="%s"%s>%s</button></form>`, op.class, confirm, op.label)
	}
	b.WriteString(`</div>`)
	return b.String()
}
