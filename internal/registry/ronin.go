package registry

import "github.com/ethereum/go-ethereum/common"

// Well known Ronin addresses.
var (
	WETHAddress = common.HexToAddress("0xc99a6a985ed2cac1ef41640596c5a5f9f4e19ef5")
	AXSAddress  = common.HexToAddress("0xed4a9f48a62fb6fdcfb45bb00c9f61d1a436e58c")
	SLPAddress  = common.HexToAddress("0xa8754b9fa15fc18bb59458815510e40a12cd2014")
	AECAddress  = common.HexToAddress("0x173a2d4fa585a63acd02c107d57f932be0a71bcc")
	USDCAddress = common.HexToAddress("0x0b7007c13325c48911f73a2dad5fa5dcbf808adc")
	WRONAddress = common.HexToAddress("0xe514d9deb7966c8be0ca922de8a064264ea6bcd4")
	AxieAddress = common.HexToAddress("0x32950db2a7164ae833121501c797d79e7b79d74c")
	LandAddress = common.HexToAddress("0x8c811e3c958e190f5ec15fb376533a3398620500")
	ItemAddress = common.HexToAddress("0xa96660f0e4a3e9bc7388925d245a6d4d79e21259")

	MarketplaceAddress = common.HexToAddress("0x213073989821f738A7BA3520C3D31a1F9aD31bBd")
)

// Ronin returns the built-in registry of Ronin token contracts.
func Ronin() *Registry {
	r, err := New(
		Contract{Address: WETHAddress, Name: "WETH", Decimals: 18, ERC: ERC20},
		Contract{Address: AXSAddress, Name: "AXS", Decimals: 18, ERC: ERC20},
		Contract{Address: SLPAddress, Name: "SLP", Decimals: 0, ERC: ERC20},
		Contract{Address: AECAddress, Name: "AEC", Decimals: 0, ERC: ERC20},
		Contract{Address: USDCAddress, Name: "USDC", Decimals: 18, ERC: ERC20},
		Contract{Address: WRONAddress, Name: "WRON", Decimals: 18, ERC: ERC20},
		Contract{Address: AxieAddress, Name: "AXIE", Decimals: 0, ERC: ERC721},
		Contract{Address: LandAddress, Name: "LAND", Decimals: 0, ERC: ERC721},
		Contract{Address: ItemAddress, Name: "ITEM", Decimals: 0, ERC: ERC721},
		Contract{Address: MarketplaceAddress, Name: "MARKETPLACE"},
	)
	if err != nil {
		panic(err)
	}
	return r
}
