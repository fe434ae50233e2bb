package console

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// marathi maps each English message (used as the key) to its Marathi text.
// Format verbs must match between the two.
var marathi = map[string]string{
	"Kirana Shop Management":              "किराणा दुकान व्यवस्थापन",
	"Add Product":                         "नवीन उत्पादन जोडा",
	"View Products":                       "उत्पादन पहा",
	"Update Stock":                        "स्टॉक अपडेट",
	"Delete Product":                      "उत्पादन हटवा",
	"New Customer":                        "नवीन ग्राहक",
	"Generate Bill":                       "नवीन बिल",
	"View Sales":                          "विक्री तपशील",
	"Exit":                                "बाहेर पडा",
	"Press 'L' to toggle Marathi/English": "मराठी/इंग्रजी बदलण्यासाठी 'L' दाबा",
	"Enter choice: ":                      "निवडा: ",
	"Switched to Marathi!":                "मराठी निवडली!",
	"Invalid choice!":                     "चुकीची निवड!",
	"Exiting...":                          "बाहेर पडत आहे...",

	"Add New Product":                             "नवीन उत्पादन जोडा",
	"Product Name: ":                              "उत्पादनाचे नाव: ",
	"Category (Grocery/Patal Bhaji/Spices): ":     "प्रकार (Grocery/Patal Bhaji/Spices): ",
	"Price (₹): ":                                 "किंमत (₹): ",
	"Stock: ":                                     "स्टॉक: ",
	"Manufacturing date (YYYY-MM-DD): ":           "उत्पादन तारीख (YYYY-MM-DD): ",
	"Expiry date (YYYY-MM-DD): ":                  "समाप्ती तारीख (YYYY-MM-DD): ",
	"GST rate (%s): ":                             "GST दर (%s): ",
	"Product added! ID: %s":                       "उत्पादन जोडले! ID: %s",
	"Note: GST rate %s is not a usual band (%s).": "सूचना: GST दर %s नेहमीच्या दरांपैकी नाही (%s).",
	"Invalid input: %v":                           "चुकीची माहिती: %v",
	"Could not save, nothing was changed: %v":     "जतन करता आले नाही, काहीही बदलले नाही: %v",
	"No products yet.":                            "अजून उत्पादने नाहीत.",
	"Product ID: ":                                "उत्पादन ID: ",
	"New stock: ":                                 "नवीन स्टॉक: ",
	"Stock updated: %s now has %s":                "स्टॉक अपडेट: %s आता %s",
	"Delete %s (%s)? (y/n): ":                     "%s (%s) हटवायचे? (y/n): ",
	"Product deleted: %s":                         "उत्पादन हटवले: %s",
	"Cancelled.":                                  "रद्द केले.",
	"Not found: %s":                               "सापडले नाही: %s",
	"ID":                                          "ID",
	"Name":                                        "नाव",
	"Category":                                    "प्रकार",
	"Price":                                       "किंमत",
	"Stock":                                       "स्टॉक",
	"Expiry":                                      "समाप्ती",
	"Customer Phone: ":                            "ग्राहक मोबाइल: ",
	"Name: ":                                      "नाव: ",
	"Address: ":                                   "पत्ता: ",
	"New customer!":                               "नवीन ग्राहक!",
	"Customer already registered: %s (%s)":        "ग्राहक आधीच नोंदणीकृत: %s (%s)",
	"Customer added! ID: %s":                      "ग्राहक जोडला! ID: %s",
	"Add Product (ID or 'done'): ":                "उत्पादन जोडा (ID किंवा 'done'): ",
	"Invalid ID!":                                 "चुकीचे ID!",
	"Quantity: ":                                  "प्रमाण: ",
	"Invalid quantity!":                           "चुकीचे प्रमाण!",
	"Added: %s x %s":                              "जोडले: %s x %s",
	"No items entered, bill cancelled.":           "एकही उत्पादन नाही, बिल रद्द.",
	"%s discount!":                                "%s सवलत!",
	"Gudi Padwa":                                  "गुढी पाडवा",
	"BILL":                                        "बिल",
	"Bill ID: %s":                                 "बिल क्रमांक: %s",
	"Date: %s":                                    "तारीख: %s",
	"Customer: %s (%s)":                           "ग्राहक: %s (%s)",
	"Subtotal":                                    "एकूण",
	"Discount":                                    "सवलत",
	"Payable":                                     "देय",
	"Skipped: %v":                                 "वगळले: %v",
	"Sales Summary":                               "विक्री तपशील",
	"No sales yet.":                               "अजून विक्री नाही.",
	"Bills":                                       "बिले",
	"By date":                                     "तारखेनुसार",
	"By customer":                                 "ग्राहकानुसार",
	"Total":                                       "एकूण देय",
	"Warning: ledger could not be loaded (%v).": "सूचना: माहिती लोड करता आली नाही (%v).",
	"Starting with an empty shop.":              "रिकाम्या दुकानाने सुरुवात करत आहे.",
}

var messages = mustBuildCatalog()

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range marathi {
		if err := b.SetString(language.Marathi, key, text); err != nil {
			panic(fmt.Sprintf("console: bad Marathi message %q: %v", key, err))
		}
	}
	return b
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}
