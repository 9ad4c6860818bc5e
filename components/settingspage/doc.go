// Package settingspage serves the Publishing Settings page over net/http.
//
// GET and HEAD render the form from the stored option blob. POST decodes the
// submission, runs it through the settings group's sanitize step, persists
// the result and either redirects back (no notices) or re-renders the page
// with the accumulated validation notices.
package settingspage
