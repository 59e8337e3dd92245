// Package insight generates optional narrative insights for an audit
// report by calling an ordered fallback chain of generative model
// identifiers. Failure here degrades the feature, never the request:
// the generator logs, tries the next model, and ultimately returns
// nil rather than surfacing an error.
package insight
