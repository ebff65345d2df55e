package commerce

// AddressType categorizes a saved address.
type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

// ValidAddressType reports whether t is one of the known categories.
func ValidAddressType(t AddressType) bool {
	switch t {
	case AddressHome, AddressWork, AddressOther:
		return true
	}
	return false
}

// Address is a saved delivery address. In any non-empty address collection
// exactly one entry has IsDefault set; setting it on one entry clears it on
// every other entry in the same update.
type Address struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Mobile       string      `json:"mobile"`
	AddressLine1 string      `json:"addressLine1"`
	AddressLine2 string      `json:"addressLine2,omitempty"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Pincode      string      `json:"pincode"`
	Landmark     string      `json:"landmark,omitempty"`
	AddressType  AddressType `json:"addressType"`
	IsDefault    bool        `json:"isDefault"`
}

// AddressPatch carries partial address updates. Nil fields are left untouched.
type AddressPatch struct {
	Name         *string      `json:"name,omitempty"`
	Mobile       *string      `json:"mobile,omitempty"`
	AddressLine1 *string      `json:"addressLine1,omitempty"`
	AddressLine2 *string      `json:"addressLine2,omitempty"`
	City         *string      `json:"city,omitempty"`
	State        *string      `json:"state,omitempty"`
	Pincode      *string      `json:"pincode,omitempty"`
	Landmark     *string      `json:"landmark,omitempty"`
	AddressType  *AddressType `json:"addressType,omitempty"`
	IsDefault    *bool        `json:"isDefault,omitempty"`
}

// Apply copies the non-nil patch fields onto a.
func (p AddressPatch) Apply(a *Address) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Mobile != nil {
		a.Mobile = *p.Mobile
	}
	if p.AddressLine1 != nil {
		a.AddressLine1 = *p.AddressLine1
	}
	if p.AddressLine2 != nil {
		a.AddressLine2 = *p.AddressLine2
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.State != nil {
		a.State = *p.State
	}
	if p.Pincode != nil {
		a.Pincode = *p.Pincode
	}
	if p.Landmark != nil {
		a.Landmark = *p.Landmark
	}
	if p.AddressType != nil {
		a.AddressType = *p.AddressType
	}
	if p.IsDefault != nil {
		a.IsDefault = *p.IsDefault
	}
}
