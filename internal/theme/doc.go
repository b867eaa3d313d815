// Package theme holds the built-in theme registry and the rules for choosing
// which theme to render. Built-in themes are bundled as embedded JSON
// documents; custom themes come from the customtheme cache.
package theme
