package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNav struct {
	method, url, contentType string
	body                     []byte
	calls                    int
}

func (f *fakeNav) Navigate(method, url string, body []byte, contentType string) error {
	f.method = method
	f.url = url
	f.body = body
	f.contentType = contentType
	f.calls++
	return nil
}

func newInput(d *Document, form NodeID, name, value string) NodeID {
	id := addChild(d, form, &Node{Kind: KindElement, LocalName: "input"})
	if n, ok := d.GetNodeMut(id); ok {
		n.SetAttr("name", name)
		n.SetAttr("value", value)
	}
	return id
}

func TestSubmitForm_GetEncodesQuery(t *testing.T) {
	d := newTestDocument(t)
	nav := &fakeNav{}
	d.Nav = nav
	d.SetBaseURL("https://example.com/")

	form := addChild(d, d.Root, &Node{Kind: KindElement, LocalName: "form"})
	if n, ok := d.GetNodeMut(form); ok {
		n.SetAttr("method", "get")
		n.SetAttr("action", "/x")
	}
	newInput(d, form, "a", "1")
	newInput(d, form, "b", "2")

	require.NoError(t, d.SubmitForm(form, form, nil, nil))
	assert.Equal(t, "get", nav.method)
	assert.Equal(t, "https://example.com/x?a=1&b=2", nav.url)
}

func TestSubmitForm_ImageButtonCoords(t *testing.T) {
	d := newTestDocument(t)
	nav := &fakeNav{}
	d.Nav = nav
	d.SetBaseURL("https://example.com/")

	form := addChild(d, d.Root, &Node{Kind: KindElement, LocalName: "form"})
	if n, ok := d.GetNodeMut(form); ok {
		n.SetAttr("method", "get")
		n.SetAttr("action", "/x")
	}
	btn := addChild(d, form, &Node{Kind: KindElement, LocalName: "input"})
	if n, ok := d.GetNodeMut(btn); ok {
		n.SetAttr("type", "image")
		n.SetAttr("name", "btn")
	}

	x, y := 17.0, 42.0
	require.NoError(t, d.SubmitForm(form, btn, &x, &y))
	assert.Equal(t, "https://example.com/x?btn.x=17&btn.y=42", nav.url)
}

func TestSubmitForm_PostUrlencoded(t *testing.T) {
	d := newTestDocument(t)
	nav := &fakeNav{}
	d.Nav = nav
	d.SetBaseURL("https://example.com/")

	form := addChild(d, d.Root, &Node{Kind: KindElement, LocalName: "form"})
	if n, ok := d.GetNodeMut(form); ok {
		n.SetAttr("method", "post")
		n.SetAttr("action", "/submit")
	}
	newInput(d, form, "q", "hello world")

	require.NoError(t, d.SubmitForm(form, form, nil, nil))
	assert.Equal(t, "post", nav.method)
	assert.Equal(t, "application/x-www-form-urlencoded", nav.contentType)
	assert.Equal(t, "q=hello+world", string(nav.body))
}

func TestSubmitForm_PostTextPlain(t *testing.T) {
	d := newTestDocument(t)
	nav := &fakeNav{}
	d.Nav = nav
	d.SetBaseURL("https://example.com/")

	form := addChild(d, d.Root, &Node{Kind: KindElement, LocalName: "form"})
	if n, ok := d.GetNodeMut(form); ok {
		n.SetAttr("method", "post")
		n.SetAttr("action", "/submit")
		n.SetAttr("enctype", "text/plain")
	}
	newInput(d, form, "name", "value")

	require.NoError(t, d.SubmitForm(form, form, nil, nil))
	assert.Equal(t, "text/plain", nav.contentType)
	assert.Equal(t, "name=value\r\n", string(nav.body))
}

func TestSubmitForm_CheckboxOnlyWhenChecked(t *testing.T) {
	d := newTestDocument(t)
	nav := &fakeNav{}
	d.Nav = nav
	d.SetBaseURL("https://example.com/")

	form := addChild(d, d.Root, &Node{Kind: KindElement, LocalName: "form"})
	if n, ok := d.GetNodeMut(form); ok {
		n.SetAttr("method", "get")
		n.SetAttr("action", "/x")
	}
	cb := addChild(d, form, &Node{Kind: KindElement, LocalName: "input"})
	if n, ok := d.GetNodeMut(cb); ok {
		n.SetAttr("type", "checkbox")
		n.SetAttr("name", "agree")
		n.RoleData = CheckboxState{Checked: true}
	}
	cbUnchecked := addChild(d, form, &Node{Kind: KindElement, LocalName: "input"})
	if n, ok := d.GetNodeMut(cbUnchecked); ok {
		n.SetAttr("type", "checkbox")
		n.SetAttr("name", "skip")
		n.RoleData = CheckboxState{Checked: false}
	}

	require.NoError(t, d.SubmitForm(form, form, nil, nil))
	assert.Equal(t, "https://example.com/x?agree=on", nav.url)
}

func TestSubmitForm_FileInput_NoFilesSendsEmptyEntry(t *testing.T) {
	d := newTestDocument(t)
	nav := &fakeNav{}
	d.Nav = nav
	d.SetBaseURL("https://example.com/")

	form := addChild(d, d.Root, &Node{Kind: KindElement, LocalName: "form"})
	if n, ok := d.GetNodeMut(form); ok {
		n.SetAttr("method", "get")
		n.SetAttr("action", "/x")
	}
	file := addChild(d, form, &Node{Kind: KindElement, LocalName: "input"})
	if n, ok := d.GetNodeMut(file); ok {
		n.SetAttr("type", "file")
		n.SetAttr("name", "upload")
	}

	require.NoError(t, d.SubmitForm(form, form, nil, nil))
	assert.Equal(t, "https://example.com/x?upload=", nav.url)
}

func TestSubmitForm_DisabledControlExcluded(t *testing.T) {
	d := newTestDocument(t)
	nav := &fakeNav{}
	d.Nav = nav
	d.SetBaseURL("https://example.com/")

	form := addChild(d, d.Root, &Node{Kind: KindElement, LocalName: "form"})
	if n, ok := d.GetNodeMut(form); ok {
		n.SetAttr("method", "get")
		n.SetAttr("action", "/x")
	}
	disabled := newInput(d, form, "a", "1")
	if n, ok := d.GetNodeMut(disabled); ok {
		n.SetAttr("disabled", "")
	}
	newInput(d, form, "b", "2")

	require.NoError(t, d.SubmitForm(form, form, nil, nil))
	assert.Equal(t, "https://example.com/x?b=2", nav.url)
}

func TestSubmitForm_DialogMethodDoesNotNavigate(t *testing.T) {
	d := newTestDocument(t)
	nav := &fakeNav{}
	d.Nav = nav

	form := addChild(d, d.Root, &Node{Kind: KindElement, LocalName: "form"})
	if n, ok := d.GetNodeMut(form); ok {
		n.SetAttr("method", "dialog")
	}

	require.NoError(t, d.SubmitForm(form, form, nil, nil))
	assert.Equal(t, 0, nav.calls)
}

func TestNormalizeLineEndings(t *testing.T) {
	assert.Equal(t, "a\r\nb", normalizeLineEndings("a\rb"))
	assert.Equal(t, "a\r\nb", normalizeLineEndings("a\nb"))
	assert.Equal(t, "a\r\nb", normalizeLineEndings("a\r\nb"))
	assert.Equal(t, "a\r\n\r\nb", normalizeLineEndings("a\n\rb"))
}

func TestSubmitForm_MissingFormNode(t *testing.T) {
	d := newTestDocument(t)
	err := d.SubmitForm(NodeID(999), NodeID(999), nil, nil)
	assert.Error(t, err)
}
