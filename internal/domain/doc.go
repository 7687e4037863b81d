// Package domain models Home Front Command (Pikud HaOref) alarm-history data
// and the roster reconciliation logic built on top of it.
//
// # Data Source
//
// Alert records come from the public alarm-history feed at
// https://alerts-history.oref.org.il/Shared/Ajax/GetAlarmsHistory.aspx,
// queried one calendar day at a time (DD.MM.YYYY). Each record carries a
// human-readable date and time, a sortable alertDate timestamp, a numeric
// category, and a "data" field holding one location string or a list of them.
//
// # Feed Conventions
//
// Category:
//
//	1 = rocket/missile alerts, the only category this service consumes.
//	The field is encoded inconsistently (number or string) across feed
//	responses, so comparison happens on the canonical string form.
//
// Location strings:
//
//	Hebrew city or district names, often with subdistrict suffixes
//	("אשדוד - דרום") or compound district names ("מודיעין עילית").
//	Punctuation varies between responses: the Hebrew maqaf (U+05BE) and
//	en dash (U+2013) both stand in for a plain hyphen, and gershayim
//	(U+05F4) or an ASCII apostrophe may decorate abbreviations. [Normalize]
//	canonicalizes all of these before matching.
//
// alertDate:
//
//	A sortable timestamp, usually an ISO-style string, occasionally a bare
//	numeric ordinal in older dumps. [Timestamp] accepts both and imposes a
//	total order, which drives the "last alert" derivation in [Reconcile].
//
// # Matching
//
// A user's city matches an alert location when either normalized string
// contains the other. Two cities need extra rules beyond containment; those
// live in the [Matcher] override table rather than in the matching loop.
package domain
