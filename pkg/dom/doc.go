// Package dom provides the small element tree hosts hand to controls as a
// mount point. Controls build their markup beneath the mount and the tree can
// be serialised to HTML for browser hosts.
package dom
