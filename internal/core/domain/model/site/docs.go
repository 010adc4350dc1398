// Package site contains the Site aggregate: a fixed location with a cash
// float, a fund floor, and optionally registered coordinates. The fund
// sufficiency rules for both cash-movement flows are defined here.
package site
