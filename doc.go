// Package fundsync reconciles a personal fund-investment ledger hosted in
// Notion against public market-data feeds. It is the engine behind the
// `fsync` command-line tool, designed to run unattended on a schedule and to
// be safe to re-run at any time.
//
// One run performs up to four sequential phases:
//   - Linking: trades without a holding relation are matched (or a holding is
//     created) by their 6-digit fund code, and fund names are backfilled.
//   - Market update: every holding's live estimated valuation is refreshed
//     from the fundgz feed, with the eastmoney historical-NAV feed as
//     fallback.
//   - Position weighting: each holding's share of total cost basis is
//     written back as a fraction.
//   - Trade metrics: estimated redemption fees and unrealized holding profit
//     are recomputed for every linked trade.
//
// All state lives in the Notion databases; this package persists nothing of
// its own, which is what makes every phase idempotent.
package fundsync
