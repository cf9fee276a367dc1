package mode

import "fmt"

const (
	customStep    = 5
	customMin     = 5
	customDefault = 30
)

// presetSetting is an integer option chosen from presets or a custom value
// that is edited in steps.
type presetSetting struct {
	presets []int
	suffix  string
	value   int
	custom  int
	editing bool
}

func newPresetSetting(presets []int, value int, suffix string) presetSetting {
	p := presetSetting{
		presets: presets,
		suffix:  suffix,
		value:   max(value, 1),
		custom:  customDefault,
	}
	if !p.isPreset(p.value) {
		p.custom = p.value
	}
	return p
}

func (p *presetSetting) isPreset(v int) bool {
	for _, preset := range p.presets {
		if preset == v {
			return true
		}
	}
	return false
}

func (p *presetSetting) customIndex() int {
	return len(p.presets)
}

func (p *presetSetting) count() int {
	return len(p.presets) + 1
}

func (p *presetSetting) items(focused int) []OptionItem {
	items := make([]OptionItem, 0, p.count())
	for i, v := range p.presets {
		items = append(items, OptionItem{
			Label:   fmt.Sprintf("%d%s", v, p.suffix),
			Active:  p.value == v && !p.editing,
			Focused: focused == i,
		})
	}
	items = append(items, OptionItem{
		Label:   fmt.Sprintf("custom %d%s", p.custom, p.suffix),
		Active:  !p.isPreset(p.value) || p.editing,
		Focused: focused == p.customIndex(),
		Editing: p.editing,
	})
	return items
}

// pick selects a preset, or toggles editing of the custom value.
func (p *presetSetting) pick(index int) {
	switch {
	case index >= 0 && index < len(p.presets):
		p.value = p.presets[index]
		p.editing = false
	case index == p.customIndex():
		if p.editing {
			p.editing = false
			return
		}
		p.editing = true
		p.value = p.custom
	}
}

func (p *presetSetting) adjust(index int, dir Direction) {
	if index != p.customIndex() {
		return
	}
	switch dir {
	case Left:
		p.custom = max(p.custom-customStep, customMin)
	case Right:
		p.custom += customStep
	}
	p.value = p.custom
}
