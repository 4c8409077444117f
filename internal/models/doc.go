// Package models defines the core domain models for sharesplit.
//
// # Models
//
//   - Expense: a shared cost created by one user and divided among participants
//   - ExpenseShare: one participant's portion of an Expense
//   - User: a registered account that can create expenses and hold shares
//
// # Design Principles
//
//  1. Money is decimal.Decimal everywhere, never float64.
//  2. Relationships use ID strings instead of pointers (ExpenseShare.UserID, Expense.CreatedBy).
//  3. An Expense owns its Shares: they are written together and deleted together.
//  4. Timestamps are Unix seconds, matching the storage layer.
package models
