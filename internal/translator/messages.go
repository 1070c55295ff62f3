package translator

import (
	"errors"
	"fmt"
)

// EmptyInputPrompt is returned as the translation for blank input.
const EmptyInputPrompt = "कृपया अनुवाद के लिए कुछ टेक्स्ट दर्ज करें।"

const (
	msgConnection = "अनुवाद में त्रुटि: अनुवाद सर्वर से कनेक्शन विफल हुआ।"
	msgTimeout    = "अनुवाद में त्रुटि: अनुवाद अनुरोध का समय समाप्त हो गया।"
	msgGenericAPI = "अनुवाद में त्रुटि: API से कनेक्ट नहीं हो सका।"
)

// Message renders a translation-path error as the Hindi string shown in place
// of the translation. Every error has a displayable outcome; nothing here is
// fatal to the session.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var terr *Error
	if errors.As(err, &terr) {
		switch terr.Kind {
		case KindConnection:
			return msgConnection
		case KindTimeout:
			return msgTimeout
		case KindHTTP:
			if terr.Detail != "" {
				return "अनुवाद में त्रुटि: " + terr.Detail
			}
			return msgGenericAPI
		case KindMalformed:
			return msgGenericAPI
		}
	}

	return fmt.Sprintf("अनुवाद में त्रुटि: %v\nकृपया छोटे इनपुट के साथ प्रयास करें।", err)
}
