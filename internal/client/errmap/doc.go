// Package errmap turns backend error responses into user-facing text.
//
// The backend reports failures either as JSON ({"message": ...} or
// {"error": ...}) or as the default HTML error page of its web framework,
// where the code sits inside a <pre> block:
//
//	<pre>Error: Email already exists<br> &nbsp;at router.post (...)</pre>
//
// Map extracts the code and looks it up in a message table. Unknown codes
// become a generic message unless dev mode is on, in which case the raw
// code is returned to help debugging.
package errmap
