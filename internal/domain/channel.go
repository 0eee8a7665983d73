package domain

// Channel is one of the two independent verification paths.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

func ValidChannel(c Channel) bool {
	return c == ChannelEmail || c == ChannelPhone
}

// Verified reports the state of the given channel on the user.
func (u *User) Verified(c Channel) bool {
	if c == ChannelEmail {
		return u.EmailVerified
	}
	return u.PhoneVerified
}

// PendingCode returns the stored single-use code for the channel.
func (u *User) PendingCode(c Channel) string {
	if c == ChannelEmail {
		return u.EmailCode
	}
	return u.PhoneCode
}

// Address returns the delivery address for the channel.
func (u *User) Address(c Channel) string {
	if c == ChannelEmail {
		return u.Email
	}
	return u.Phone
}
