package render

import "strconv"

// Dialect holds the class annotations one strategy puts on its markup.
// Empty classes are omitted.
type Dialect struct {
	Container string
	Row       string
	Column    func(width int) string

	Group      string // wrapper around a labelled control
	Label      string
	Helper     string
	Control    string // text-like inputs and textareas
	Select     string
	Check      string // wrapper around one checkbox or radio
	CheckInput string
	CheckLabel string

	Button       string
	SubmitButton string
	Heading      string
	Paragraph    string
	Image        string
	Link         string
	Divider      string
	Form         string
	Placeholder  string
	PreviewClass string // added to the container of preview output
}

func (d Dialect) columnClass(width int) string {
	if d.Column == nil {
		return ""
	}
	return d.Column(width)
}

func (d Dialect) buttonClass(subtype string) string {
	if subtype == "submit" && d.SubmitButton != "" {
		return d.SubmitButton
	}
	return d.Button
}

var htmlDialect = Dialect{
	Row:         "row",
	Column:      func(w int) string { return "col col-" + strconv.Itoa(w) },
	Group:       "field",
	Check:       "check",
	Placeholder: "placeholder",
}

var bootstrapDialect = Dialect{
	Container:    "container",
	Row:          "row",
	Column:       func(w int) string { return "col-md-" + strconv.Itoa(w) },
	Group:        "mb-3",
	Label:        "form-label",
	Helper:       "form-text",
	Control:      "form-control",
	Select:       "form-select",
	Check:        "form-check",
	CheckInput:   "form-check-input",
	CheckLabel:   "form-check-label",
	Button:       "btn btn-secondary",
	SubmitButton: "btn btn-primary",
	Heading:      "h2",
	Image:        "img-fluid",
	Link:         "link-primary",
	Divider:      "my-3",
	Placeholder:  "alert alert-warning",
}

var tailwindDialect = Dialect{
	Container:    "mx-auto max-w-5xl space-y-4",
	Row:          "grid grid-cols-12 gap-4",
	Column:       func(w int) string { return "col-span-" + strconv.Itoa(w) },
	Group:        "mb-4",
	Label:        "mb-1 block text-sm font-medium text-gray-700",
	Helper:       "mt-1 text-xs text-gray-500",
	Control:      "block w-full rounded-md border border-gray-300 px-3 py-2",
	Select:       "block w-full rounded-md border border-gray-300 px-3 py-2",
	Check:        "flex items-center gap-2",
	CheckInput:   "h-4 w-4 rounded border-gray-300",
	CheckLabel:   "text-sm text-gray-700",
	Button:       "rounded-md bg-gray-200 px-4 py-2 text-gray-800",
	SubmitButton: "rounded-md bg-indigo-600 px-4 py-2 text-white",
	Heading:      "text-2xl font-semibold",
	Paragraph:    "text-gray-700",
	Image:        "h-auto max-w-full",
	Link:         "text-indigo-600 underline",
	Divider:      "my-4 border-gray-200",
	Placeholder:  "border border-dashed border-red-400 p-2 text-red-600",
}

var previewDialect = Dialect{
	Container:    "preview",
	Row:          "preview-row",
	Column:       func(w int) string { return "preview-col preview-col-" + strconv.Itoa(w) },
	Group:        "preview-field",
	Label:        "preview-label",
	Helper:       "preview-helper",
	Check:        "preview-check",
	Placeholder:  "preview-placeholder",
	PreviewClass: "preview-disabled",
}
