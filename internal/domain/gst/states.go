package gst

// StateCode is the two-digit GST state code embedded in a GSTIN
// and used as the place-of-supply identifier on tax documents.
type StateCode string

// UnknownStateName is returned for state codes not in the registry.
// Upstream data may reference codes that are not yet catalogued, so
// lookups degrade to this sentinel instead of failing.
const UnknownStateName = "Unknown"

// stateNames maps GST state codes to state/union territory names.
var stateNames = map[StateCode]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"26": "Dadra and Nagar Haveli and Daman and Diu",
	"27": "Maharashtra",
	"28": "Andhra Pradesh",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh (New)",
	"38": "Ladakh",
}

// String returns the string representation of the state code
func (c StateCode) String() string {
	return string(c)
}

// Name returns the state name for the code, or UnknownStateName
// if the code is not catalogued.
func (c StateCode) Name() string {
	if name, ok := stateNames[c]; ok {
		return name
	}
	return UnknownStateName
}

// IsKnown returns true if the code is present in the registry
func (c StateCode) IsKnown() bool {
	_, ok := stateNames[c]
	return ok
}
