// Package recipeclip recovers structured recipes (title, ingredients, steps,
// hero image) from social-video and recipe-publisher pages that offer no API
// contract. It runs an ordered list of extraction strategies per site type,
// scores candidate text for recipe-ness, and learns which strategies work for
// which page shapes via a persisted success-rate store.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package recipeclip
