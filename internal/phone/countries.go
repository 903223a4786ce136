package phone

// Country is a dialing-code catalog entry offered by the auth prompt.
type Country struct {
	Code string
	Name string
}

// Countries lists the dialing codes the assistant accepts. Nigeria first;
// it is the program's home country and the default.
var Countries = []Country{
	{Code: "234", Name: "Nigeria (+234)"},
	{Code: "233", Name: "Ghana (+233)"},
	{Code: "254", Name: "Kenya (+254)"},
	{Code: "255", Name: "Tanzania (+255)"},
	{Code: "256", Name: "Uganda (+256)"},
	{Code: "27", Name: "South Africa (+27)"},
	{Code: "1", Name: "USA/Canada (+1)"},
	{Code: "44", Name: "UK (+44)"},
	{Code: "91", Name: "India (+91)"},
	{Code: "86", Name: "China (+86)"},
	{Code: "33", Name: "France (+33)"},
	{Code: "49", Name: "Germany (+49)"},
}

// CountryByCode returns the catalog entry for code, or false when the code
// is not offered.
func CountryByCode(code string) (Country, bool) {
	for _, c := range Countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}
