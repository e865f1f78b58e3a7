// Package git stamps validation runs with the revision of the repository
// holding the site content.
package git
