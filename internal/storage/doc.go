// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage keeps the little that dai writes to disk.
//
// Conversations are deliberately not stored. Only two things are:
//
//   - StateStore: the onboarding flags and the chosen theme, in state.json
//   - ImageStore: every displayed image, content-addressed under images/, so
//     the terminal can show a path the user can open
//
// # Usage
//
//	states := storage.NewStateStore(cfg.StatePath())
//	st, _ := states.Load()
//	st.Onboarding = st.Onboarding.DismissIntro()
//	_ = states.Save(st)
//
//	images := storage.NewImageStore(cfg.ImagesDir())
//	info, _ := images.Save(dataURL)
//
// # Storage Location
//
// Everything lives in ~/.dai/ unless storage.data_dir says otherwise.
package storage
