package render

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/formgrid/pkg/layout"
)

// fieldKey selects a field handler: the element's markup tag and, for
// generic tags, the field's type property.
type fieldKey struct {
	tag     string
	subtype string
}

type fieldHandler func(p *pass, f *layout.Field)

// genericTags dispatch further on the type property.
var genericTags = map[string]bool{"input": true, "button": true}

func keyFor(tag string, f *layout.Field) fieldKey {
	if genericTags[tag] {
		return fieldKey{tag: tag, subtype: f.PropertyString(layout.PropType)}
	}
	return fieldKey{tag: tag}
}

var textInputTypes = []string{
	"text", "email", "password", "number", "date", "time", "datetime-local",
	"url", "tel", "search", "color", "range", "file",
}

func defaultHandlers() map[fieldKey]fieldHandler {
	h := map[fieldKey]fieldHandler{
		{"input", "hidden"}:   hiddenInput,
		{"input", "checkbox"}: checkbox,
		{"input", "radio"}:    radioGroup,
		{"textarea", ""}:      textarea,
		{"select", ""}:        selectField,
		{"button", "button"}:  button,
		{"button", "submit"}:  button,
		{"button", "reset"}:   button,
		{"p", ""}:             textBlock,
		{"hr", ""}:            divider,
		{"img", ""}:           image,
		{"a", ""}:             link,
	}
	for _, t := range textInputTypes {
		h[fieldKey{"input", t}] = textInput
	}
	for i := 1; i <= 6; i++ {
		h[fieldKey{"h" + strconv.Itoa(i), ""}] = textBlock
	}
	return h
}

// group wraps a labelled control. The label precedes body, the helper text
// follows it.
func (p *pass) group(f *layout.Field, labelFor bool, body func()) {
	p.w.open("div", p.outer(attrs{}.set("class", p.dialect.Group)))
	if p.opts.IncludeLabels {
		if label := f.Label(); label != "" {
			a := attrs{}.set("class", p.dialect.Label)
			if labelFor {
				a = a.set("for", f.PropertyString(layout.PropID))
			}
			p.w.text("label", a, label)
		}
	}
	body()
	if help := f.MetaString(layout.MetaHelper); help != "" {
		p.w.text("small", attrs{}.set("class", p.dialect.Helper), help)
	}
	p.w.close("div")
}

// control returns the attributes of a form control.
func (p *pass) control(f *layout.Field, class string, skip ...string) attrs {
	a := p.propertyAttrs(f, skip...).set("class", class).flag("disabled", p.disabled)
	return p.eventAttrs(a, f)
}

func textInput(p *pass, f *layout.Field) {
	p.group(f, true, func() {
		p.w.void("input", p.control(f, p.dialect.Control))
	})
}

func hiddenInput(p *pass, f *layout.Field) {
	p.w.void("input", p.outer(p.propertyAttrs(f)))
}

func checkbox(p *pass, f *layout.Field) {
	p.w.open("div", p.outer(attrs{}.set("class", p.dialect.Check)))
	p.w.void("input", p.control(f, p.dialect.CheckInput))
	if label := f.Label(); p.opts.IncludeLabels && label != "" {
		a := attrs{}.set("class", p.dialect.CheckLabel).set("for", f.PropertyString(layout.PropID))
		p.w.text("label", a, label)
	}
	p.w.close("div")
}

// radioGroup renders one radio button per option. Option inputs get the
// field id with the option index appended.
func radioGroup(p *pass, f *layout.Field) {
	id := f.PropertyString(layout.PropID)
	value := f.PropertyString("value")
	p.group(f, false, func() {
		for i, opt := range options(f) {
			optID := fmt.Sprintf("%s-%d", id, i+1)
			p.w.open("div", attrs{}.set("class", p.dialect.Check))
			a := attrs{}.
				set("id", optID).
				set("name", f.PropertyString(layout.PropName)).
				set("type", "radio").
				set("value", opt).
				flag("checked", opt == value).
				set("class", p.dialect.CheckInput).
				flag("disabled", p.disabled)
			p.w.void("input", p.eventAttrs(a, f))
			p.w.text("label", attrs{}.set("class", p.dialect.CheckLabel).set("for", optID), opt)
			p.w.close("div")
		}
	})
}

func textarea(p *pass, f *layout.Field) {
	p.group(f, true, func() {
		p.w.text("textarea", p.control(f, p.dialect.Control, "value"), f.PropertyString("value"))
	})
}

func selectField(p *pass, f *layout.Field) {
	value := f.PropertyString("value")
	p.group(f, true, func() {
		p.w.open("select", p.control(f, p.dialect.Select, "value"))
		for _, opt := range options(f) {
			p.w.text("option", attrs{}.set("value", opt).flag("selected", opt == value), opt)
		}
		p.w.close("select")
	})
}

func button(p *pass, f *layout.Field) {
	class := p.dialect.buttonClass(f.PropertyString(layout.PropType))
	p.w.text("button", p.outer(p.control(f, class)), f.Label())
}

// textBlock renders headings and paragraphs from the content meta attribute.
func textBlock(p *pass, f *layout.Field) {
	tag := "p"
	class := p.dialect.Paragraph
	if def, ok := p.registry.Get(f.Type); ok && def.Tag != "p" {
		tag, class = def.Tag, p.dialect.Heading
	}
	p.w.text(tag, p.outer(p.propertyAttrs(f).set("class", class)), f.MetaString(layout.MetaContent))
}

func divider(p *pass, f *layout.Field) {
	p.w.void("hr", p.outer(p.propertyAttrs(f).set("class", p.dialect.Divider)))
}

func image(p *pass, f *layout.Field) {
	a := p.propertyAttrs(f).set("class", p.dialect.Image)
	if !a.has("alt") {
		a = append(a, attr{key: "alt"})
	}
	p.w.void("img", p.outer(a))
}

// link drops its href in preview output.
func link(p *pass, f *layout.Field) {
	var a attrs
	if p.disabled {
		a = p.propertyAttrs(f, "href", "target").set("aria-disabled", "true").set("tabindex", "-1")
	} else {
		a = p.eventAttrs(p.propertyAttrs(f), f)
	}
	p.w.text("a", p.outer(a.set("class", p.dialect.Link)), f.MetaString(layout.MetaContent))
}

// placeholderField marks a field no handler exists for.
func placeholderField(p *pass, f *layout.Field) {
	a := attrs{}.set("class", p.dialect.Placeholder).set("data-type", f.Type)
	p.w.text("div", p.outer(a), fmt.Sprintf("Unsupported element %q", f.Type))
}

// options returns a field's options property as strings.
func options(f *layout.Field) []string {
	switch v := f.Properties["options"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, o := range v {
			out = append(out, fmt.Sprint(o))
		}
		return out
	default:
		return nil
	}
}
