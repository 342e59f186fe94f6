// Package pages registers all dashboard pages and their table views with the
// core registry. Import this package to ensure all pages are registered.
package pages

// This file exists to provide a single import point.
// Each page file uses init() to register its page and views.
