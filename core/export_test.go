// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// ResetInitialised lets tests bring a fresh platform up.
func ResetInitialised() {
	initialised.Store(false)
}
