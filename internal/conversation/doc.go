// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation owns the chat history and the request state machine.
//
// The Orchestrator is driven from a Bubble Tea Update loop. Submit validates
// input, appends the user turn and returns a tea.Cmd that performs the gateway
// call off the loop. The command's result message is fed back through Update,
// which appends the model turn (possibly after a second image request) and
// returns to Idle.
//
// # States
//
//	Idle --Submit--> AwaitingPrimaryResponse
//	AwaitingPrimaryResponse --text reply--> Idle
//	AwaitingPrimaryResponse --action marker--> AwaitingSecondaryImageResponse
//	AwaitingSecondaryImageResponse --image--> Idle
//	any await state --failure--> Idle (error turn appended)
//
// Clear and SwitchMode are valid in every state. Both cancel the in-flight
// request and advance the generation counter; results tagged with an older
// generation are discarded when they arrive.
package conversation
