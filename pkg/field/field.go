package field

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/kind"
	"github.com/goliatone/go-spform/pkg/visibility"
)

// Field is the contract every widget wrapper implements. Show, Hide and
// MakeEditable cannot fail and return the field so calls chain; the value and
// read-only operations report failures through their error.
type Field interface {
	Descriptor() *Descriptor
	Name() string
	Kind() kind.Kind
	// Variant names the concrete wrapper, e.g. "choice-radio".
	Variant() string

	Value() (any, error)
	SetValue(v any) error

	Show() Field
	Hide() Field
	MakeReadOnly(opts ...ReadOnlyOption) error
	MakeEditable() Field
}

// Optioner is implemented by fields backed by a closed option list.
type Optioner interface {
	Options() []string
}

// ReadOnlyOption tweaks how MakeReadOnly renders the overlay.
type ReadOnlyOption func(*readOnlyConfig)

type readOnlyConfig struct {
	textOnly bool
}

// WithTextOnly renders hyperlink values as "address, description" instead of
// an anchor. The choice sticks for later overlay refreshes.
func WithTextOnly() ReadOnlyOption {
	return func(cfg *readOnlyConfig) {
		cfg.textOnly = true
	}
}

func collectReadOnly(opts []ReadOnlyOption) readOnlyConfig {
	var cfg readOnlyConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// base holds what every variant shares: its descriptor, the page, the control
// element and the lazily created read-only overlay.
type base struct {
	desc     *Descriptor
	env      Env
	variant  string
	controls *goquery.Selection
	overlay  *goquery.Selection
	self     Field
}

func newBase(desc *Descriptor, env Env, variant string, controls *goquery.Selection) base {
	return base{desc: desc, env: env, variant: variant, controls: controls}
}

func (b *base) Descriptor() *Descriptor { return b.desc }

func (b *base) Name() string { return b.desc.Name }

func (b *base) Kind() kind.Kind { return b.desc.Kind }

func (b *base) Variant() string { return b.variant }

func (b *base) Show() Field {
	visibility.Show(rowsOf(b.desc))
	return b.self
}

func (b *base) Hide() Field {
	visibility.Hide(rowsOf(b.desc))
	return b.self
}

func (b *base) MakeEditable() Field {
	dom.Show(b.controls)
	if b.overlay != nil {
		dom.Hide(b.overlay)
	}
	return b.self
}

// Controls returns the control element.
func (b *base) Controls() *goquery.Selection {
	return b.controls
}

// ReadOnly reports whether the overlay is currently shown in place of the
// control.
func (b *base) ReadOnly() bool {
	return b.overlay != nil && !dom.IsHidden(b.overlay)
}

// Overlay exposes the read-only element, nil until MakeReadOnly ran once.
func (b *base) Overlay() *goquery.Selection {
	return b.overlay
}

// overlayRenderer is implemented by every variant that can render its value
// for the read-only overlay.
type overlayRenderer interface {
	overlayMarkup() (string, error)
}

// readOnlyConfigurer lets a variant keep read-only options, such as text only
// hyperlinks, for later refreshes.
type readOnlyConfigurer interface {
	configureReadOnly(cfg readOnlyConfig)
}

func (b *base) MakeReadOnly(opts ...ReadOnlyOption) error {
	r, ok := b.self.(overlayRenderer)
	if !ok {
		return &Error{Kind: KindNotImplemented, Field: b.desc.Name, Op: "read-only", Actual: b.desc.Marker}
	}
	if c, ok := b.self.(readOnlyConfigurer); ok {
		c.configureReadOnly(collectReadOnly(opts))
	}
	markup, err := r.overlayMarkup()
	if err != nil {
		return err
	}
	dom.Hide(b.controls)
	if b.overlay == nil {
		b.overlay = newOverlay(b.controls)
	}
	b.overlay.SetHtml(markup)
	dom.Show(b.overlay)
	return nil
}

// sync keeps an existing overlay in step with the control after SetValue.
func (b *base) sync() error {
	if b.overlay == nil {
		return nil
	}
	r, ok := b.self.(overlayRenderer)
	if !ok {
		return nil
	}
	markup, err := r.overlayMarkup()
	if err != nil {
		return err
	}
	b.overlay.SetHtml(markup)
	return nil
}

func rowsOf(desc *Descriptor) visibility.Rows {
	return visibility.Rows{Label: desc.LabelRow, Controls: desc.ControlsRow}
}
