/*
Package account parses the flat account list and masks identifiers.

The account list arrives as a single whitespace/newline separated string of
alternating username/password tokens (the format the check-in service's
operators keep in their environment). ParseList turns it into an ordered
credential slice; order matters because cohort membership is positional.

Masking replaces a fixed rune range of the username with '*' so that every
log line and report entry identifies an account without exposing it:

	account.Mask("user12345678", 3, 7) // "use****45678"

Credentials are plain values and are never serialized by this package.
*/
package account
