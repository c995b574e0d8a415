// Package components keeps the registry of renderable controls. Each
// descriptor pairs a renderer with the stylesheets and scripts the browser
// needs, so a page can emit every asset once no matter how many controls it
// hosts.
package components
