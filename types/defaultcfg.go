// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// DefaultConfig testnet defaults
var DefaultConfig = `
Title="splitsteal"

[rpc]
laddr="https://rpc.testnet.near.org"
finality="optimistic"
timeout="30s"

[contract]
contractID="splitsteal.testnet"
createDeposit="0.1"
gas=30000000000000
listAmount=10

[wallet]
accountID=""
privateKey=""
credentialsFile=""

[log]
logConsoleLevel="error"
loglevel="info"
logFile=""
maxFileSize=100
maxBackups=10
maxAge=28
localTime=true
compress=false
callerFile=false
callerFunction=false

[metrics]
enableMetrics=false
`
