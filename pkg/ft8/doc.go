/*
Package ft8 defines the FT8 "pounce" QSO: answering a station that calls CQ and
carrying the exchange through signal reports and the closing roger.

	012545   5  0.2 1608 ~  CQ BI4VNM PM01       listen_for_activity -> hear_cq
	012604  Tx      1555 ~  BI4VNM DU3TW PK05    hear_cq -> reply_to_cq
	012815   2  0.0 1610 ~  DU3TW BI4VNM +00     reply_to_cq -> get_rst
	012815   2  0.0 1610 ~  BI4VNM DU3TW -05     get_rst -> send_rst
	012815   2  0.0 1610 ~  DU3TW BI4VNM RRR     send_rst -> get_bye
	012815   2  0.0 1610 ~  BI4VNM DU3TW RR73    get_bye -> finished

Decoder records carry timing and frequency metadata before the "~" separator;
Extract strips it and normalizes the message for matching.
*/
package ft8
