// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package test

// Document ticket with write capability and a single node carrying a relay
// URL and three direct addresses
const (
	DocWriteTicket = "docaaacb6elhrcqdaq25orbenr4q3rmdxahc7eykubghl4zhsw25th75slrafk62aofuwwwu5zb5ocvzj5v3rtqt6siglyuhoxhqtu4fxravvoteajcnb2hi4dthixs65ltmuys2mjomrsxe4bonfzg62bonzsxi53pojvs4lydaac2cyt22erablaraaa5ciqbfiaqj7ya6cbpuaaaaaaaaaaaahjce"

	// Decoded body of DocWriteTicket
	DocWriteTicketHex = "000020f88b3c4501821aeba212363c86e2c1dc0717c98550263af993cadaeccffec9710155ed01c5a5ad6a7721eb855ca7b5dc6709fa4832f143bae784e9c2de20ad5d32012268747470733a2f2f757365312d312e646572702e69726f682e6e6574776f726b2e2f030005a1627ad12200ac110001d122012a0104ff00f082fa0000000000000001d222"

	DocWriteNamespace = "7cftyribqinoxiqsgy6inywb3qdrpsmfkatdv6mtzlnozt76zfyq"
	DocWriteNodeId    = "kxwqdrnfvvvhoiplqvokpno4m4e7usbs6fb3vz4e5hbn4ifnluza"
	// Node ID as rendered by the grouped (legacy viewer) encoding
	DocWriteNodeIdGrouped = "kxwqcaofuwwwugtxehvylik4u625zndhbh5eqebs6fb3vlxhqtu4fmw6ecwv2fjs"

	DefaultRelayUrl = "https://use1-1.derp.iroh.network./"
)

var DocWriteDirectAddresses = []string{
	"5.161.98.122:4433",
	"172.17.0.1:4433",
	"[2a01:4ff:f0:82fa::1]:4434",
}
