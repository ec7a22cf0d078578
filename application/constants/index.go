package constants

// paygate response codes
// these consist of 4 digit numbers
//
// the 1st 3 name the charge outcome
// 4th indicates if the client has to collect something from the customer. 0 means it does not. 1 means it does.

var CHARGE_COMPLETED uint = 2010         // nothing left to do
var CHARGE_PENDING uint = 2020           // poll VerifyPayment, the gateway has not settled yet
var CHARGE_VOIDED uint = 2030            // the hold was released
var CHARGE_REQUIRES_PIN uint = 3111      // collect the card pin and charge again
var CHARGE_REQUIRES_OTP uint = 3121      // collect the otp and call validate
var CHARGE_REQUIRES_REDIRECT uint = 3131 // send the customer to redirectUrl
var CHARGE_REQUIRES_ADDRESS uint = 3141  // collect the billing address and charge again
var CHARGE_VALIDATE_PIN uint = 3151      // collect the card pin and call validate
var CHARGE_FAILED uint = 4010            // show the gateway message
