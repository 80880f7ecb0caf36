package wizard

// Callback payloads carried by the wizard's inline buttons. List and
// prompt actions embed their discriminator after the prefix.
const (
	cbCreate              = "tpl_list_create"
	cbBack                = "tpl_list_back"
	cbPublishPrefix       = "tpl_list_publish_"
	cbDeletePrefix        = "tpl_list_delete_"
	cbConfirmDeletePrefix = "tpl_list_confirm_delete_"
	cbTypePrefix          = "tpl_type_"
	cbCurrencyPrefix      = "tpl_cur_"
	cbMarginPrefix        = "tpl_margin_"
)
