// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package process

import (
	"context"
	"os"
)

func wait(_ context.Context, ps *os.Process) (exitStatus, error) {
	st, err := ps.Wait()
	if err != nil {
		return exitStatus{code: -1}, err
	}

	return exitStatus{exited: st.Exited(), code: st.ExitCode()}, nil
}
