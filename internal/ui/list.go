package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tfx/internal/projection"
)

var (
	_ list.Item = pickerItem{}
)

// pickerItem wraps [projection.PickerOption] to implement [list.Item].
type pickerItem struct {
	option  projection.PickerOption
	checked bool
}

func (i pickerItem) FilterValue() string { return i.option.Label }

func (i pickerItem) Title() string {
	if !i.option.Selectable() {
		return styles.separator.Render("── " + i.option.Label + " ──")
	}
	if i.checked {
		return "[x] " + i.option.Label
	}
	return "[ ] " + i.option.Label
}

func (i pickerItem) Description() string {
	if !i.option.Selectable() {
		return ""
	}
	return string(i.option.Kind) + " • " + i.option.Value
}

func pickerItems(opts []projection.PickerOption, checked map[string]bool) []list.Item {
	items := make([]list.Item, len(opts))
	for i, o := range opts {
		items[i] = pickerItem{option: o, checked: o.Selectable() && checked[o.ID()]}
	}
	return items
}
