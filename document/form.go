package document

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// FormEntry is one name/value pair contributed to a form's entry list.
type FormEntry struct {
	Name  string
	Value string
}

// collectFormControls returns every element in the tree rooted at d.Root
// that belongs to form (either a descendant of it, or carrying a matching
// form="..." attribute), in document order.
func (d *Document) collectFormControls(form NodeID) []NodeID {
	var out []NodeID
	formIDAttr := ""
	if n, ok := d.arena.GetNode(form); ok {
		formIDAttr = n.IDAttr
	}
	var walk func(id NodeID, insideForm bool)
	walk = func(id NodeID, insideForm bool) {
		n, ok := d.arena.GetNode(id)
		if !ok {
			return
		}
		owned := insideForm || id == form
		if !owned && formIDAttr != "" {
			if ref, ok := n.GetAttr("form"); ok && ref == formIDAttr {
				owned = true
			}
		}
		if owned && id != form && isFormControl(n) {
			out = append(out, id)
		}
		for _, c := range n.Children {
			walk(c, owned)
		}
	}
	walk(d.Root, false)
	return out
}

func isFormControl(n *Node) bool {
	switch n.LocalName {
	case "input", "select", "textarea", "button":
		return true
	}
	return false
}

func hasDatalistAncestor(d *Document, id NodeID) bool {
	n, ok := d.arena.GetNode(id)
	if !ok {
		return false
	}
	for cur := n.Parent; cur != NoNode; {
		cn, ok := d.arena.GetNode(cur)
		if !ok {
			break
		}
		if cn.LocalName == "datalist" {
			return true
		}
		cur = cn.Parent
	}
	return false
}

// BuildEntryList constructs the form's submission entry list per control
// kind, given the submitting control and optional click coordinates for
// image buttons.
func (d *Document) BuildEntryList(form, submitter NodeID, clickX, clickY *float64) []FormEntry {
	var entries []FormEntry

	for _, id := range d.collectFormControls(form) {
		n, ok := d.arena.GetNode(id)
		if !ok {
			continue
		}
		if _, disabled := n.GetAttr("disabled"); disabled {
			continue
		}
		if hasDatalistAncestor(d, id) {
			continue
		}

		name, hasName := n.GetAttr("name")

		switch n.LocalName {
		case "button":
			if id != submitter {
				continue
			}
			if hasName {
				value, _ := n.GetAttr("value")
				entries = append(entries, FormEntry{Name: name, Value: normalizeLineEndings(value)})
			}

		case "input":
			typ, _ := n.GetAttr("type")
			switch strings.ToLower(typ) {
			case "submit", "reset", "button":
				if id != submitter {
					continue
				}
				if hasName {
					value, _ := n.GetAttr("value")
					entries = append(entries, FormEntry{Name: name, Value: normalizeLineEndings(value)})
				}
			case "image":
				if id != submitter || !hasName {
					continue
				}
				x, y := resolveClickCoords(d, id, clickX, clickY)
				entries = append(entries,
					FormEntry{Name: name + ".x", Value: fmt.Sprintf("%d", x)},
					FormEntry{Name: name + ".y", Value: fmt.Sprintf("%d", y)},
				)
			case "checkbox", "radio":
				if !hasName {
					continue
				}
				state, _ := n.RoleData.(CheckboxState)
				if !state.Checked {
					continue
				}
				value := state.Value
				if value == "" {
					value = "on"
				}
				entries = append(entries, FormEntry{Name: name, Value: normalizeLineEndings(value)})
			case "file":
				if !hasName {
					continue
				}
				state, _ := n.RoleData.(FileInputState)
				if len(state.SelectedFiles) == 0 {
					entries = append(entries, FormEntry{Name: name, Value: ""})
				} else {
					for _, f := range state.SelectedFiles {
						entries = append(entries, FormEntry{Name: name, Value: f.Name})
					}
				}
			case "hidden":
				if strings.EqualFold(name, "_charset_") {
					entries = append(entries, FormEntry{Name: name, Value: encodingLabel(d.DetectEncoding())})
					continue
				}
				if hasName {
					value, _ := n.GetAttr("value")
					entries = append(entries, FormEntry{Name: name, Value: normalizeLineEndings(value)})
				}
			default:
				if hasName {
					value, _ := n.GetAttr("value")
					if state, ok := n.RoleData.(TextInputState); ok {
						value = state.Value
					}
					entries = append(entries, FormEntry{Name: name, Value: normalizeLineEndings(value)})
				}
			}

		case "select":
			if !hasName {
				continue
			}
			for _, c := range n.Children {
				cn, ok := d.arena.GetNode(c)
				if !ok || !cn.IsElement("option") {
					continue
				}
				if _, sel := cn.GetAttr("selected"); !sel {
					continue
				}
				if _, disabled := cn.GetAttr("disabled"); disabled {
					continue
				}
				value, ok := cn.GetAttr("value")
				if !ok {
					value = collectTextContent(d, c)
				}
				entries = append(entries, FormEntry{Name: name, Value: normalizeLineEndings(value)})
			}

		case "textarea":
			if hasName {
				state, _ := n.RoleData.(TextInputState)
				entries = append(entries, FormEntry{Name: name, Value: normalizeLineEndings(state.Value)})
			}
		}
	}

	return entries
}

func resolveClickCoords(d *Document, id NodeID, clickX, clickY *float64) (int, int) {
	if clickX != nil && clickY != nil {
		return int(*clickX), int(*clickY)
	}
	n, ok := d.arena.GetNode(id)
	if !ok {
		return 0, 0
	}
	r := n.FinalLayout
	return r.X + r.Width/2, r.Y + r.Height/2
}

// normalizeLineEndings rewrites every lone CR or LF in s to a CRLF pair,
// leaving existing CRLF pairs untouched.
func normalizeLineEndings(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			b.WriteString("\r\n")
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\n':
			b.WriteString("\r\n")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func encodingLabel(enc encoding.Encoding) string {
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "utf-8"
	}
	return strings.ToLower(name)
}

// formOverrides captures the formmethod/formaction/formenctype attributes a
// submit button may use to override its owning form's declared behavior.
type formOverrides struct {
	method, action, enctype string
}

func overridesFor(n *Node) formOverrides {
	var o formOverrides
	o.method, _ = n.GetAttr("formmethod")
	o.action, _ = n.GetAttr("formaction")
	o.enctype, _ = n.GetAttr("formenctype")
	return o
}

// SubmitForm runs the entry-list-construction and URL/body-resolution
// algorithm for form, submitted via submitter (which may equal form itself
// for an Enter-key submission with no explicit submit control), and emits
// the resulting navigation request.
func (d *Document) SubmitForm(form, submitter NodeID, clickX, clickY *float64) error {
	formNode, ok := d.arena.GetNode(form)
	if !ok {
		return fmt.Errorf("document: no such node %d", form)
	}

	var over formOverrides
	if subNode, ok := d.arena.GetNode(submitter); ok {
		over = overridesFor(subNode)
	}

	method := strings.ToLower(firstNonEmpty(over.method, attrOr(formNode, "method", "get")))
	action := firstNonEmpty(over.action, attrOr(formNode, "action", ""))
	enctype := firstNonEmpty(over.enctype, attrOr(formNode, "enctype", "application/x-www-form-urlencoded"))

	if method == "dialog" {
		return nil
	}

	entries := d.BuildEntryList(form, submitter, clickX, clickY)

	base := action
	if base == "" && d.BaseURL != nil {
		base = d.BaseURL.String()
	}
	actionURL, err := url.Parse(base)
	if err != nil {
		if d.BaseURL != nil {
			actionURL = d.BaseURL
		} else {
			actionURL = &url.URL{}
		}
	} else if d.BaseURL != nil && !actionURL.IsAbs() {
		actionURL = d.BaseURL.ResolveReference(actionURL)
	}

	values := url.Values{}
	for _, e := range entries {
		values.Add(e.Name, e.Value)
	}

	isMailto := actionURL.Scheme == "mailto"

	var body []byte
	var contentType string
	resultURL := *actionURL

	switch {
	case isMailto && method == "get":
		q := resultURL.Query()
		for k, vs := range values {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		resultURL.RawQuery = q.Encode()

	case isMailto && method == "post":
		text := textPlainBody(entries)
		q := resultURL.Query()
		q.Set("body", url.QueryEscape(text))
		resultURL.RawQuery = q.Encode()

	case method == "get":
		resultURL.RawQuery = values.Encode()

	case method == "post" && enctype == "text/plain":
		body = []byte(textPlainBody(entries))
		contentType = "text/plain"

	case method == "post" && enctype == "multipart/form-data":
		// Multipart encoding is handled by the transport layer; pass the
		// entries through as a urlencoded fallback body plus the declared
		// content type so the navigation provider can re-encode if it
		// supports multipart natively.
		body = []byte(values.Encode())
		contentType = enctype

	case method == "post":
		body = []byte(values.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	if d.Nav == nil {
		return nil
	}
	return d.Nav.Navigate(method, resultURL.String(), body, contentType)
}

func textPlainBody(entries []FormEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Name)
		b.WriteByte('=')
		b.WriteString(e.Value)
		b.WriteString("\r\n")
	}
	return b.String()
}

func attrOr(n *Node, name, def string) string {
	if v, ok := n.GetAttr(name); ok && v != "" {
		return v
	}
	return def
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
