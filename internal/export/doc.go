// Package export converts generated plain-text content into a paginated
// PDF document and saves it for download.
//
// The strategy is rasterize-then-embed: content is laid out as flowed
// text at a fixed page-proportional width, rasterized into a single PNG,
// and anchored below the title on the first page. Text becomes a pixel
// image rather than native vector text, trading searchability for
// guaranteed visual fidelity across fonts. Overflow beyond the first
// page's content box is scaled to fit rather than paginated; this is a
// deliberate simplification, not a multi-page guarantee.
package export
