/*
main.go

Copyright © 2025 Code Monkey Cybersecurity
Contact: git@cybermonkey.net.au

This file is part of userdir.

This software is dual-licensed under the Do No Harm License
and the GNU Affero General Public License v3 (AGPL-3.0-or-later).
You may use, modify, and distribute it under the terms of either license.

See LICENSE.agpl and LICENSE.dnh for full details.
*/
package main

import (
	"fmt"
	"os"

	"github.com/CodeMonkeyCybersecurity/userdir/cmd"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/telemetry"
)

func main() {
	logger.InitializeWithFallback()
	if err := telemetry.Init("userdir"); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Telemetry disabled: %v\n", err)
	}

	cmd.Execute()
}
